package model_test

import (
	"testing"
	"time"

	model "planner/internal/domain/model"

	"github.com/smartystreets/goconvey/convey"
)

func TestEventTargetInstant(t *testing.T) {
	convey.Convey("Given an event with well-formed date and time", t, func() {
		event := model.Event{
			ID:       "event-123",
			Title:    "Dentist",
			Date:     "2025-06-15",
			Time:     "09:30",
			Category: model.CategoryHealth,
		}

		convey.Convey("When deriving the target instant", func() {
			target := event.TargetInstant()

			convey.Convey("Then it should combine date and time in local time", func() {
				want := time.Date(2025, 6, 15, 9, 30, 0, 0, time.Local)
				convey.So(target.Equal(want), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the time field is midnight", func() {
			event.Time = "00:00"
			target := event.TargetInstant()

			convey.Convey("Then the instant should land on the date boundary", func() {
				want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
				convey.So(target.Equal(want), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given an event with malformed fields", t, func() {
		convey.Convey("When the date is garbage", func() {
			event := model.Event{ID: "bad", Date: "not-a-date", Time: "10:00"}

			convey.Convey("Then the target instant is the zero time", func() {
				convey.So(event.TargetInstant().IsZero(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the time is missing", func() {
			event := model.Event{ID: "bad", Date: "2025-06-15"}

			convey.Convey("Then the target instant is the zero time", func() {
				convey.So(event.TargetInstant().IsZero(), convey.ShouldBeTrue)
			})
		})
	})
}

func TestEventToday(t *testing.T) {
	convey.Convey("Given a reference instant", t, func() {
		now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.Local)

		convey.Convey("When the event falls on the same calendar date", func() {
			event := model.Event{Date: "2025-06-15", Time: "23:00"}

			convey.Convey("Then Today reports true even if the time is later", func() {
				convey.So(event.Today(now), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the event falls on another date", func() {
			event := model.Event{Date: "2025-06-16", Time: "00:30"}

			convey.Convey("Then Today reports false", func() {
				convey.So(event.Today(now), convey.ShouldBeFalse)
			})
		})
	})
}

func TestParseCategory(t *testing.T) {
	convey.Convey("Given the closed category enumeration", t, func() {
		convey.Convey("When parsing each known value", func() {
			known := []string{"personal", "study", "health", "birthday", "meeting", "travel", "other"}

			convey.Convey("Then each maps onto itself", func() {
				for _, s := range known {
					convey.So(model.ParseCategory(s).String(), convey.ShouldEqual, s)
				}
			})
		})

		convey.Convey("When parsing an unknown value", func() {
			c := model.ParseCategory("gardening")

			convey.Convey("Then it falls back to personal", func() {
				convey.So(c, convey.ShouldEqual, model.CategoryPersonal)
			})
		})

		convey.Convey("When parsing an empty value", func() {
			c := model.ParseCategory("")

			convey.Convey("Then it falls back to personal", func() {
				convey.So(c, convey.ShouldEqual, model.CategoryPersonal)
			})
		})
	})
}

func TestCategoryColor(t *testing.T) {
	convey.Convey("Given the category color table", t, func() {
		convey.Convey("When looking up every known category", func() {
			categories := []model.Category{
				model.CategoryPersonal,
				model.CategoryStudy,
				model.CategoryHealth,
				model.CategoryBirthday,
				model.CategoryMeeting,
				model.CategoryTravel,
				model.CategoryOther,
			}

			convey.Convey("Then each has a distinct accent", func() {
				seen := map[string]bool{}
				for _, c := range categories {
					color := c.Color()
					convey.So(color, convey.ShouldNotBeEmpty)
					convey.So(seen[color], convey.ShouldBeFalse)
					seen[color] = true
				}
			})
		})

		convey.Convey("When looking up an unknown category", func() {
			color := model.Category("gardening").Color()

			convey.Convey("Then it gets the personal accent", func() {
				convey.So(color, convey.ShouldEqual, model.CategoryPersonal.Color())
			})
		})
	})
}
