package operator

import (
	"encoding/json"
	"fmt"
)

// Profile represents a scanning station operator in the database. Preferences
// hold per-operator UI and device settings as free-form JSON.
type Profile struct {
	OperatorID  string          `gorm:"type:varchar(100);column:operator_id;primaryKey;not null" json:"operator_id"`
	DisplayName string          `gorm:"type:varchar(200);column:display_name" json:"display_name"`
	Preferences json.RawMessage `gorm:"type:json;column:preferences;serializer:json" json:"preferences"`
}

// TableName specifies the database table name for Profile
func (p *Profile) TableName() string {
	return "operator_profiles"
}

// Context is the operator identity available in a request. It is a transient
// value injected by the middleware from the station header.
type Context struct {
	*Profile
}

// GetPreferencesMap returns the operator preferences as a map for convenient
// access. If no preferences exist, it returns an empty map.
func (c *Context) GetPreferencesMap() (map[string]any, error) {
	preferences := make(map[string]any)
	if c == nil || c.Profile == nil || len(c.Profile.Preferences) == 0 {
		return preferences, nil
	}

	if err := json.Unmarshal(c.Profile.Preferences, &preferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal operator preferences: %w", err)
	}

	return preferences, nil
}
