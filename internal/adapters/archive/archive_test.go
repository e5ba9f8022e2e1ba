package archive_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mirall/archetype/internal/adapters/archive"
	"github.com/mirall/archetype/internal/domain/model"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty archive", t, func() {
		ctx := context.Background()
		store := archive.NewMemoryStore()

		Convey("When a submission is archived", func() {
			sub := model.Submission{SessionID: "s-1", Strategy: "fixed", PrimaryID: "spark"}
			So(store.Put(ctx, sub), ShouldBeNil)

			Convey("Then it can be read back", func() {
				got, err := store.Get(ctx, "s-1")
				So(err, ShouldBeNil)
				So(got.PrimaryID, ShouldEqual, "spark")
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("And re-archiving the same session overwrites", func() {
				sub.PrimaryID = "anchor"
				So(store.Put(ctx, sub), ShouldBeNil)
				got, err := store.Get(ctx, "s-1")
				So(err, ShouldBeNil)
				So(got.PrimaryID, ShouldEqual, "anchor")
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the session id is missing", func() {
			err := store.Put(ctx, model.Submission{})

			Convey("Then the write is rejected", func() {
				So(err, ShouldWrap, archive.ErrInvalidSubmission)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When reading an unknown session", func() {
			_, err := store.Get(ctx, "nope")
			So(err, ShouldWrap, archive.ErrNotFound)
		})
	})
}
