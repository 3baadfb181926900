package sampledata_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/quizmerge/internal/adapters/source"
	"github.com/okian/quizmerge/internal/domain/namekey"
	"github.com/okian/quizmerge/internal/domain/resolve"
	"github.com/okian/quizmerge/internal/domain/roster"
	"github.com/okian/quizmerge/internal/sampledata"
	"github.com/okian/quizmerge/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given the default generator config", t, func() {
		cfg := sampledata.DefaultConfig()

		Convey("When generating twice with the same seed", func() {
			a, errA := sampledata.Generate(cfg)
			b, errB := sampledata.Generate(cfg)

			Convey("Then the datasets are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldResemble, b)
				So(a.Stats.Students, ShouldEqual, cfg.Students)
				So(a.Stats.Sessions, ShouldEqual, cfg.Sessions)
			})
		})

		Convey("When generating a dataset", func() {
			ds, err := sampledata.Generate(cfg)
			So(err, ShouldBeNil)

			Convey("Then every roster name key is unique", func() {
				seen := map[namekey.Key]bool{}
				for _, st := range ds.Students {
					k := namekey.Parse(st.Name())
					So(seen[k], ShouldBeFalse)
					seen[k] = true
				}
			})

			Convey("Then correct counts stay within the question count", func() {
				for _, s := range ds.Sessions {
					for _, r := range s.Rows {
						So(r.Correct, ShouldBeBetweenOrEqual, 0, cfg.Questions)
						So(r.Score, ShouldBeGreaterThanOrEqualTo, 0)
					}
				}
			})
		})

		Convey("When the config is out of range", func() {
			cfg.Students = 0
			_, err := sampledata.Generate(cfg)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, sampledata.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a generator writing to a temp dir", t, func() {
		So(logger.InitWithWriter(io.Discard), ShouldBeNil)
		ctx := context.Background()

		cfg := sampledata.DefaultConfig()
		cfg.Dir = t.TempDir()
		cfg.Sessions = 3
		cfg.StrangerRate = 0.1

		stats, err := sampledata.Run(ctx, cfg)
		So(err, ShouldBeNil)

		Convey("Then the files read back through the source adapters", func() {
			table, err := source.NewRosterCSV(filepath.Join(cfg.Dir, sampledata.RosterFile)).Load(ctx)
			So(err, ShouldBeNil)
			So(table.Rows, ShouldHaveLength, cfg.Students)

			sessions := source.NewSessionDir(filepath.Join(cfg.Dir, sampledata.ReportsDir))
			ids, err := sessions.List(ctx)
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []string{"Session 01.xlsx", "Session 02.xlsx", "Session 03.xlsx"})

			Convey("And only strangers stay unresolved", func() {
				idx, err := roster.Build(ctx, table, roster.WithStrictKeys(true))
				So(err, ShouldBeNil)

				rows, unresolved := 0, 0
				for _, id := range ids {
					s, err := sessions.Session(ctx, id)
					So(err, ShouldBeNil)
					res, err := resolve.New().Resolve(ctx, s, idx)
					So(err, ShouldBeNil)

					rows += res.Rows
					unresolved += len(res.Unresolved)
					for _, k := range res.Unresolved {
						So(strings.HasPrefix(k.Label(), "guest"), ShouldBeTrue)
					}
				}
				So(rows, ShouldEqual, stats.Rows)
				So(unresolved, ShouldEqual, stats.Strangers)
			})
		})
	})
}
