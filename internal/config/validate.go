package config

import (
	"errors"
	"fmt"
)

// validSorts are the catalog sort keys the server accepts as a default.
var validSorts = map[string]bool{
	"title-asc":  true,
	"title-desc": true,
	"tool":       true,
	"audience":   true,
	"newest":     true,
	"updated":    true,
}

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: out of range: %d", c.Server.Port))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn: required"))
	}
	if c.Blob.Bucket == "" {
		errs = append(errs, errors.New("blob.bucket: required"))
	}
	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret: must be at least 32 characters"))
	}
	if !validSorts[c.Catalog.DefaultSort] {
		errs = append(errs, fmt.Errorf("catalog.default_sort: unknown sort key %q", c.Catalog.DefaultSort))
	}
	if c.Catalog.SummaryLimit <= 0 {
		errs = append(errs, fmt.Errorf("catalog.summary_limit: must be positive"))
	}
	if c.Report.MaxRecords <= 0 {
		errs = append(errs, fmt.Errorf("report.max_records: must be positive"))
	}
	if c.Report.RatePerMinute <= 0 {
		errs = append(errs, fmt.Errorf("report.rate_per_minute: must be positive"))
	}

	return errors.Join(errs...)
}
