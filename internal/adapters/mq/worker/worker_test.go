package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	queue "planner/internal/adapters/mq/queue"
	worker "planner/internal/adapters/mq/worker"
	remote "planner/internal/adapters/remote"
	model "planner/internal/domain/model"
	logging "planner/pkg/logger"

	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logging.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func collectOutcome(t *testing.T, d *worker.Dispatcher) worker.Outcome {
	t.Helper()
	select {
	case o := <-d.Outcomes():
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return worker.Outcome{}
	}
}

func TestDispatcher_Create(t *testing.T) {
	convey.Convey("Given a dispatcher over a working remote store", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store := remote.NewInMemoryStore()
		defer store.Close()
		q := queue.NewInMemoryQueue(queue.WithCapacity(8))
		d := worker.NewDispatcher(q, store, "events", worker.WithName("test-dispatcher"))
		go d.Run(ctx)

		convey.Convey("When a create intent is enqueued", func() {
			event := model.Event{
				ID:       "client-1",
				Title:    "Graduation",
				Date:     "2026-06-30",
				Time:     "14:00",
				Category: model.CategoryStudy,
			}
			convey.So(q.Enqueue(ctx, queue.Intent{Op: queue.OpCreate, Event: event}), convey.ShouldBeTrue)

			convey.Convey("Then a successful outcome is published and the document persisted", func() {
				o := collectOutcome(t, d)
				convey.So(o.Err, convey.ShouldBeNil)
				convey.So(o.Intent.Op, convey.ShouldEqual, queue.OpCreate)

				sub, err := store.Subscribe(ctx, "events")
				convey.So(err, convey.ShouldBeNil)
				snap := <-sub
				convey.So(len(snap), convey.ShouldEqual, 1)
				convey.So(snap[0].Data["title"], convey.ShouldEqual, "Graduation")
				// The remote store assigns its own id, superseding the client one.
				convey.So(snap[0].ID, convey.ShouldNotEqual, "client-1")
			})
		})
	})
}

func TestDispatcher_RemoteWriteFailure(t *testing.T) {
	convey.Convey("Given a dispatcher over a failing remote store", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		boom := errors.New("permission denied")
		store := remote.NewInMemoryStore(remote.WithDeleteFailure(boom))
		defer store.Close()
		q := queue.NewInMemoryQueue(queue.WithCapacity(8))
		d := worker.NewDispatcher(q, store, "events")
		go d.Run(ctx)

		convey.Convey("When a delete intent is dispatched", func() {
			convey.So(q.Enqueue(ctx, queue.Intent{Op: queue.OpDelete, ID: "doc-1"}), convey.ShouldBeTrue)

			convey.Convey("Then the outcome wraps ErrRemoteWrite and keeps the intent", func() {
				o := collectOutcome(t, d)
				convey.So(o.Err, convey.ShouldNotBeNil)
				convey.So(errors.Is(o.Err, worker.ErrRemoteWrite), convey.ShouldBeTrue)
				convey.So(o.Intent.ID, convey.ShouldEqual, "doc-1")
			})
		})
	})
}

func TestDispatcher_OrderFollowsIntentOrder(t *testing.T) {
	convey.Convey("Given a single dispatcher", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		store := remote.NewInMemoryStore()
		defer store.Close()
		q := queue.NewInMemoryQueue(queue.WithCapacity(8))
		d := worker.NewDispatcher(q, store, "events")
		go d.Run(ctx)

		convey.Convey("When several creates are enqueued in order", func() {
			titles := []string{"one", "two", "three"}
			for _, title := range titles {
				in := queue.Intent{Op: queue.OpCreate, Event: model.Event{Title: title, Date: "2026-01-01", Time: "00:00"}}
				convey.So(q.Enqueue(ctx, in), convey.ShouldBeTrue)
			}

			convey.Convey("Then outcomes arrive in the same order", func() {
				for _, title := range titles {
					o := collectOutcome(t, d)
					convey.So(o.Err, convey.ShouldBeNil)
					convey.So(o.Intent.Event.Title, convey.ShouldEqual, title)
				}
			})
		})
	})
}

func TestDispatcher_Shutdown(t *testing.T) {
	convey.Convey("Given a running dispatcher", t, func() {
		ctx := context.Background()

		store := remote.NewInMemoryStore()
		defer store.Close()
		q := queue.NewInMemoryQueue()
		d := worker.NewDispatcher(q, store, "events")
		go d.Run(ctx)

		convey.Convey("When it is shut down", func() {
			err := d.Shutdown(ctx)

			convey.Convey("Then it stops cleanly and closes the outcomes channel", func() {
				convey.So(err, convey.ShouldBeNil)
				_, ok := <-d.Outcomes()
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}
