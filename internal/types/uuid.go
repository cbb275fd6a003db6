package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex client_01HQ7Z4S9Y0Q3B1N8W2E5R6T7A
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_CLIENT          = "client"
	UUID_PREFIX_BILLING_DETAIL  = "bill"
	UUID_PREFIX_CONTACT         = "contact"
	UUID_PREFIX_PROJECT         = "proj"
	UUID_PREFIX_TEAM_MEMBER     = "ptm"
	UUID_PREFIX_EFFORT          = "effort"
	UUID_PREFIX_USER            = "user"
	UUID_PREFIX_INVOICE         = "inv"
	UUID_PREFIX_EMPLOYEE_SALARY = "sal"
	UUID_PREFIX_JOB             = "job"
	UUID_PREFIX_APPLICANT       = "applicant"
	UUID_PREFIX_APPLICATION     = "app"
	UUID_PREFIX_SYNC_RUN        = "sync"
	UUID_PREFIX_TX              = "tx"
)
