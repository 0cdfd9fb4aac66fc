package config_test

import (
	"context"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"planner/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Collection, convey.ShouldEqual, "events")
			convey.So(cfg.TickIntervalMS, convey.ShouldEqual, 1000)
			convey.So(cfg.IntentQueueSize, convey.ShouldEqual, 256)
			convey.So(cfg.OutcomeBuffer, convey.ShouldEqual, 32)
			convey.So(cfg.ViewBuffer, convey.ShouldEqual, 4)
			convey.So(cfg.MaxListLimit, convey.ShouldEqual, 100)
		})
	})
}
