package operator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Service provides database access to operator profiles.
type Service struct {
	db *gorm.DB
}

// NewService migrates the profile table and returns a Service.
func NewService(db *gorm.DB) (*Service, error) {
	if err := db.AutoMigrate(&Profile{}); err != nil {
		return nil, fmt.Errorf("failed to migrate operator profiles: %w", err)
	}
	return &Service{db: db}, nil
}

// GetProfile retrieves the profile for a given operator ID. Returns
// gorm.ErrRecordNotFound when the operator has never been seen.
func (s *Service) GetProfile(operatorID string) (*Profile, error) {
	if operatorID == "" {
		return nil, fmt.Errorf("operator ID is empty")
	}

	var profile Profile
	result := s.db.Where("operator_id = ?", operatorID).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.Debug("operator profile not found", "operator_id", operatorID)
			return nil, result.Error
		}
		slog.Error("failed to fetch operator profile from database",
			"operator_id", operatorID,
			"error", result.Error,
		)
		return nil, fmt.Errorf("failed to fetch operator profile: %w", result.Error)
	}

	return &profile, nil
}

// UpsertProfile creates or updates an operator profile.
func (s *Service) UpsertProfile(operatorID, displayName string, preferences json.RawMessage) error {
	if operatorID == "" {
		return fmt.Errorf("operator ID is empty")
	}

	if len(preferences) > 0 {
		var jsonData interface{}
		if err := json.Unmarshal(preferences, &jsonData); err != nil {
			return fmt.Errorf("invalid JSON in operator preferences: %w", err)
		}
	}

	result := s.db.Save(&Profile{
		OperatorID:  operatorID,
		DisplayName: displayName,
		Preferences: preferences,
	})
	if result.Error != nil {
		slog.Error("failed to upsert operator profile",
			"operator_id", operatorID,
			"error", result.Error,
		)
		return fmt.Errorf("failed to upsert operator profile: %w", result.Error)
	}

	slog.Debug("operator profile upserted successfully", "operator_id", operatorID)
	return nil
}
