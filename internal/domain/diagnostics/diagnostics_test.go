package diagnostics_test

import (
	"context"
	"testing"

	"github.com/okian/quizmerge/internal/domain/diagnostics"
	"github.com/okian/quizmerge/internal/domain/model"
	"github.com/okian/quizmerge/internal/domain/namekey"
	"github.com/okian/quizmerge/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSummarize(t *testing.T) {
	idx, err := roster.Build(context.Background(), model.Table{
		Header: []string{"ID", "Name"},
		Rows:   [][]string{{"1", "David Peled"}, {"2", "Noa Levi"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	Convey("Given unresolved keys from several sessions", t, func() {
		unresolved := []namekey.Key{
			namekey.Parse("davd peled"),
			namekey.Parse("zorro"),
			namekey.Parse("peled davd"),
		}

		Convey("When summarizing with defaults", func() {
			hints := diagnostics.Summarize(unresolved, idx)

			Convey("Then keys are grouped and ordered by frequency", func() {
				So(len(hints), ShouldEqual, 2)
				So(hints[0].Label, ShouldEqual, "davd peled")
				So(hints[0].Count, ShouldEqual, 2)
				So(hints[1].Label, ShouldEqual, "zorro")
			})

			Convey("Then close names get a suggestion", func() {
				So(hints[0].SuggestedID, ShouldEqual, "1")
				So(hints[0].Distance, ShouldEqual, 1)
				So(hints[1].SuggestedID, ShouldEqual, "")
			})
		})

		Convey("When suggestions are disabled", func() {
			hints := diagnostics.Summarize(unresolved, idx, diagnostics.WithMaxDistance(0))

			Convey("Then no hint names an id", func() {
				for _, h := range hints {
					So(h.SuggestedID, ShouldEqual, "")
				}
			})
		})

		Convey("When no roster is available", func() {
			hints := diagnostics.Summarize(unresolved, nil)

			Convey("Then counts are still reported", func() {
				So(len(hints), ShouldEqual, 2)
			})
		})

		Convey("When nothing is unresolved", func() {
			So(diagnostics.Summarize(nil, idx), ShouldBeEmpty)
		})
	})
}
