package dedupe_test

import (
	"fmt"
	"testing"

	dedupe "github.com/okian/quizmerge/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTally(t *testing.T) {
	Convey("Given a new Tally", t, func() {
		Convey("When creating a tally with default options", func() {
			tally := dedupe.NewTally()

			Convey("Then it should be empty", func() {
				So(tally, ShouldNotBeNil)
				So(tally.Size(), ShouldEqual, 0)
				So(tally.Max(), ShouldEqual, 0)
				So(tally.Entries(), ShouldBeEmpty)
			})
		})

		Convey("When creating a tally with a capacity hint", func() {
			tally := dedupe.NewTally(dedupe.WithCapacityHint(64))

			Convey("Then it should still start empty", func() {
				So(tally.Size(), ShouldEqual, 0)
			})
		})

		Convey("When adding rows", func() {
			tally := dedupe.NewTally()

			Convey("And the key is new", func() {
				merged := tally.Add("1", 3, 1)

				Convey("Then it should not be reported as merged", func() {
					So(merged, ShouldBeFalse)
					So(tally.Size(), ShouldEqual, 1)
					So(tally.Merges(), ShouldEqual, 0)
				})
			})

			Convey("And the key reconnects", func() {
				tally.Add("1", 3, 1)
				merged := tally.Add("1", 5, 2)

				Convey("Then scores should be additive", func() {
					So(merged, ShouldBeTrue)
					So(tally.Size(), ShouldEqual, 1)
					So(tally.Merges(), ShouldEqual, 1)
					So(tally.Entries(), ShouldResemble, []dedupe.Entry{
						{Key: "1", Score: 8, Correct: 3, Rows: 2},
					})
				})
			})

			Convey("And several keys interleave", func() {
				tally.Add("b", 10, 4)
				tally.Add("a", 2, 1)
				tally.Add("b", 1, 0)
				tally.Add("c", 7, 3)

				Convey("Then first-seen order is kept", func() {
					entries := tally.Entries()
					So(len(entries), ShouldEqual, 3)
					So(entries[0].Key, ShouldEqual, "b")
					So(entries[1].Key, ShouldEqual, "a")
					So(entries[2].Key, ShouldEqual, "c")
					So(tally.Max(), ShouldEqual, 11)
				})
			})
		})

		Convey("When the entries copy is modified", func() {
			tally := dedupe.NewTally()
			tally.Add("x", 1, 1)
			entries := tally.Entries()
			entries[0].Score = 99

			Convey("Then the tally is unaffected", func() {
				So(tally.Max(), ShouldEqual, 1)
			})
		})

		Convey("When every row shares one key", func() {
			tally := dedupe.NewTally()
			for i := 0; i < 100; i++ {
				tally.Add("same", 1, 1)
			}

			Convey("Then totals equal the row count", func() {
				So(tally.Size(), ShouldEqual, 1)
				So(tally.Merges(), ShouldEqual, 99)
				So(tally.Entries()[0].Score, ShouldEqual, 100)
			})
		})

		Convey("When every row has a distinct key", func() {
			tally := dedupe.NewTally()
			for i := 0; i < 50; i++ {
				tally.Add(fmt.Sprintf("k%02d", i), i, 0)
			}

			Convey("Then nothing merges and max is the largest score", func() {
				So(tally.Size(), ShouldEqual, 50)
				So(tally.Merges(), ShouldEqual, 0)
				So(tally.Max(), ShouldEqual, 49)
			})
		})
	})
}
