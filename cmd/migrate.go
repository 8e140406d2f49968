package cmd

import (
	"fmt"
	"strconv"

	"smart-dine/pkg/database"
	"smart-dine/pkg/utils"

	"go.uber.org/zap"
)

// Migrate runs `migrate up` or `migrate down [steps]`. Down defaults to one step.
func Migrate(args []string, config utils.DatabaseConfig, logger *zap.Logger) error {
	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}

	switch direction {
	case "up":
		return database.MigrateUp(config, logger)
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
			steps = n
		}
		return database.MigrateDown(config, steps, logger)
	default:
		return fmt.Errorf("unknown migrate direction %q, want up or down", direction)
	}
}
