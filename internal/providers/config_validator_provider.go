package providers

import (
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"hourbot/internal/structures"
	"time"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks struct tags first, then the cross-field rules tags cannot express.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}

	if cv.conf.Tracker.MaxHours < 0 {
		return errors.New("invalid config: tracker.maxHours must not be negative")
	}

	if cv.conf.Tracker.Timezone != "" {
		if _, err := time.LoadLocation(cv.conf.Tracker.Timezone); err != nil {
			return fmt.Errorf("invalid config: tracker.timezone: %w", err)
		}
	}

	if cv.conf.Storage.Driver == "sheets" {
		if cv.conf.Sheets.CredentialsJSON == "" || cv.conf.Sheets.SpreadsheetID == "" {
			return errors.New("invalid config: sheets driver needs credentialsJson and spreadsheetId")
		}
	}

	return nil
}
