package service

import (
	"encoding/json"
	"fmt"

	"github.com/ashwinsr/placement-portal/internal/model"
	"github.com/ashwinsr/placement-portal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// ActivityLogService appends audit rows. Writes are fire-and-forget: a
// failed audit write is logged, never propagated to the caller.
type ActivityLogService interface {
	Log(action, username, userType string, details map[string]interface{}, ipAddress string)
	RecentLogs(limit int, action, username string) ([]model.ActivityLog, error)
}

type activityLogService struct {
	logRepo repository.ActivityLogRepository
}

func NewActivityLogService(logRepo repository.ActivityLogRepository) ActivityLogService {
	return &activityLogService{logRepo: logRepo}
}

func (s *activityLogService) Log(action, username, userType string, details map[string]interface{}, ipAddress string) {
	var detailsJSON datatypes.JSON
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			log.Error().Err(err).Str("action", action).Msg("Failed to encode activity log details")
		} else {
			detailsJSON = datatypes.JSON(raw)
		}
	}

	entry := &model.ActivityLog{
		Action:    action,
		Username:  username,
		UserType:  userType,
		Details:   detailsJSON,
		IPAddress: ipAddress,
	}
	if err := s.logRepo.Create(entry); err != nil {
		log.Error().Err(err).Str("action", action).Str("username", username).Msg("Failed to write activity log entry")
	}
}

func (s *activityLogService) RecentLogs(limit int, action, username string) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	logs, err := s.logRepo.FindRecent(limit, action, username)
	if err != nil {
		return nil, fmt.Errorf("error fetching activity logs: %w", err)
	}
	return logs, nil
}
