package store

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"hotel-ob/internal/wizard"
)

// JSONBSession wraps a wizard session for JSONB database storage
type JSONBSession struct {
	*wizard.Session
}

// Value implements the driver.Valuer interface for database storage
func (j JSONBSession) Value() (driver.Value, error) {
	if j.Session == nil {
		return nil, errors.New("cannot store a nil session")
	}
	return json.Marshal(j.Session)
}

// Scan implements the sql.Scanner interface for database retrieval
func (j *JSONBSession) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		return errors.New("session state is NULL")
	default:
		return fmt.Errorf("cannot scan %T into JSONBSession", value)
	}

	var sess wizard.Session
	if err := json.Unmarshal(bytes, &sess); err != nil {
		return err
	}
	j.Session = &sess
	return nil
}
