package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable of the credit transfer service. It is built once
// at startup by Load and passed by reference into each constructor; nothing
// mutates it afterwards.
type Config struct {
	// Transport
	Port string

	// Postgres / Redis / AMQP endpoints
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	AMQPURL      string
	AMQPExchange string

	// Billing backend
	BillingBaseURL string
	BillingTimeout time.Duration

	// Admin API
	JWTSecret string

	// Business tunables
	CountryCode            string
	AcceptedMsisdnLengths  []int
	MaxPercentageDivisor   float64
	DefaultPIN             string
	DefaultTransferReason  string
	ExtendedDaysEnabled    bool
	NewINMarkers           []string
	AmountThresholds       []float64
	SameINReasons          []string
	OldToNewReasons        []string
	NewToOldReasons        []string
	ExtensionDaysTable     []int
	Denominations          []float64
	MaxSweeperRetries      int
	SweepInterval          time.Duration
	ServiceActor           string
}

// Load reads the full configuration from the environment. A malformed amount
// bucket table is a hard error here, not a silent default at transfer time.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       GetEnv("PORT", "3000"),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", "postgres"),
		DBName:     GetEnv("DB_NAME", "credittransfer"),
		DBPort:     GetEnv("DB_PORT", "5432"),

		RedisHost:     GetEnv("REDIS_HOST", "localhost"),
		RedisPort:     GetEnv("REDIS_PORT", "6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetIntEnv("REDIS_DB", 0),

		AMQPURL:      GetEnv("AMQP_URL", ""),
		AMQPExchange: GetEnv("AMQP_EXCHANGE", "credittransfer.events"),

		BillingBaseURL: GetEnv("BILLING_BASE_URL", "http://localhost:8080"),

		JWTSecret: GetEnv("JWT_SECRET", "credittransfer"),

		CountryCode:           GetEnv("COUNTRY_CODE", "OM"),
		DefaultPIN:            GetEnv("DEFAULT_PIN", "0000"),
		DefaultTransferReason: GetEnv("DEFAULT_TRANSFER_REASON", "POS_Transfer_0001"),
		ExtendedDaysEnabled:   GetEnv("EXTENDED_DAYS_ENABLED", "true") == "true",
		ServiceActor:          GetEnv("SERVICE_ACTOR", "CreditTransferService"),
		MaxSweeperRetries:     GetIntEnv("MAX_SWEEPER_RETRIES", 10),
	}

	var err error
	if cfg.BillingTimeout, err = time.ParseDuration(GetEnv("BILLING_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid BILLING_TIMEOUT: %w", err)
	}
	if cfg.SweepInterval, err = time.ParseDuration(GetEnv("SWEEP_INTERVAL", "5m")); err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}

	if cfg.AcceptedMsisdnLengths, err = parseIntList(GetEnv("MSISDN_LENGTHS", "11,12")); err != nil {
		return nil, fmt.Errorf("invalid MSISDN_LENGTHS: %w", err)
	}
	if cfg.MaxPercentageDivisor, err = strconv.ParseFloat(GetEnv("MAX_PERCENTAGE_DIVISOR", "1"), 64); err != nil {
		return nil, fmt.Errorf("invalid MAX_PERCENTAGE_DIVISOR: %w", err)
	}
	if cfg.MaxPercentageDivisor == 0 {
		return nil, fmt.Errorf("MAX_PERCENTAGE_DIVISOR must not be zero")
	}

	cfg.NewINMarkers = parseStringList(GetEnv("NEW_IN_MARKERS", "FRiENDi,NewIN"))

	if cfg.AmountThresholds, err = parseFloatList(GetEnv("AMOUNT_THRESHOLDS", "1,5,10,50")); err != nil {
		return nil, fmt.Errorf("invalid AMOUNT_THRESHOLDS: %w", err)
	}
	cfg.SameINReasons = parseStringList(GetEnv("SAME_IN_REASONS", "Credit_transfer_0001,Credit_transfer_0005,Credit_transfer_0010,Credit_transfer_0050"))
	cfg.OldToNewReasons = parseStringList(GetEnv("OLD_TO_NEW_REASONS", "local_credit_transfer_old_to_new_0001,local_credit_transfer_old_to_new_0005,local_credit_transfer_old_to_new_0010,local_credit_transfer_old_to_new_0050"))
	cfg.NewToOldReasons = parseStringList(GetEnv("NEW_TO_OLD_REASONS", "local_credit_transfer_new_to_old_0001,local_credit_transfer_new_to_old_0005,local_credit_transfer_new_to_old_0010,local_credit_transfer_new_to_old_0050"))
	if cfg.ExtensionDaysTable, err = parseIntList(GetEnv("EXTENSION_DAYS", "30,60,90,180")); err != nil {
		return nil, fmt.Errorf("invalid EXTENSION_DAYS: %w", err)
	}

	if err := validateBuckets(cfg); err != nil {
		return nil, err
	}

	denoms, err := parseFloatList(GetEnv("DENOMINATIONS", "1,2,5,10,20,50"))
	if err != nil {
		return nil, fmt.Errorf("invalid DENOMINATIONS: %w", err)
	}
	cfg.Denominations = normalizeDenominations(denoms)

	return cfg, nil
}

// validateBuckets checks that every amount-bucketed table is non-empty and
// parallel to the threshold list, and that thresholds ascend strictly.
func validateBuckets(cfg *Config) error {
	n := len(cfg.AmountThresholds)
	if n == 0 {
		return fmt.Errorf("AMOUNT_THRESHOLDS must not be empty")
	}
	for i := 1; i < n; i++ {
		if cfg.AmountThresholds[i] <= cfg.AmountThresholds[i-1] {
			return fmt.Errorf("AMOUNT_THRESHOLDS must be strictly ascending")
		}
	}
	for name, size := range map[string]int{
		"SAME_IN_REASONS":    len(cfg.SameINReasons),
		"OLD_TO_NEW_REASONS": len(cfg.OldToNewReasons),
		"NEW_TO_OLD_REASONS": len(cfg.NewToOldReasons),
		"EXTENSION_DAYS":     len(cfg.ExtensionDaysTable),
	} {
		if size != n {
			return fmt.Errorf("%s must have %d entries to match AMOUNT_THRESHOLDS, got %d", name, n, size)
		}
	}
	return nil
}

// normalizeDenominations deduplicates and sorts the allowed amounts.
func normalizeDenominations(in []float64) []float64 {
	seen := make(map[float64]struct{}, len(in))
	out := make([]float64, 0, len(in))
	for _, d := range in {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Float64s(out)
	return out
}

func parseStringList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIntList(raw string) ([]int, error) {
	parts := parseStringList(raw)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloatList(raw string) ([]float64, error) {
	parts := parseStringList(raw)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
