package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	service "github.com/okian/quizmerge/internal/app"
	"github.com/okian/quizmerge/internal/domain/grading"
	"github.com/okian/quizmerge/internal/domain/merge"
	"github.com/okian/quizmerge/internal/domain/model"
	"github.com/okian/quizmerge/internal/domain/report"
	"github.com/okian/quizmerge/internal/domain/resolve"
	"github.com/okian/quizmerge/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

type memRoster struct {
	table model.Table
	err   error
}

func (m memRoster) Load(context.Context) (model.Table, error) { return m.table, m.err }

type memSessions struct {
	order    []string
	sessions map[string]model.Session
	listErr  error
	mu       sync.Mutex
	loaded   []string
}

func (m *memSessions) List(context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.order, nil
}

func (m *memSessions) Session(_ context.Context, id string) (model.Session, error) {
	m.mu.Lock()
	m.loaded = append(m.loaded, id)
	m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return model.Session{}, errors.New("no such session: " + id)
	}
	return s, nil
}

type memSink struct {
	written []report.Report
	err     error
}

func (m *memSink) Write(_ context.Context, r report.Report) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.written = append(m.written, r)
	return "mem://report.xlsx", nil
}

func rosterTable(rows ...[]string) model.Table {
	return model.Table{Header: []string{"ID", "Name"}, Rows: rows}
}

func row(player, score, correct string) model.SessionRow {
	return model.SessionRow{Player: player, Score: score, Correct: correct}
}

// classSessions has q2 listed before q1 to show ordering does not depend on
// the source.
func classSessions() *memSessions {
	return &memSessions{
		order: []string{"q2.xlsx", "q1.xlsx"},
		sessions: map[string]model.Session{
			"q1.xlsx": {Name: "q1", Rows: []model.SessionRow{
				row("david. ._ -- .peled", "10", "5"),
				row("david peled", "5", "5"),
				row("Noa Bar", "700", "7"),
				row("stranger danger", "3", "1"),
				row("", "50", "5"),
			}},
			"q2.xlsx": {Name: "q2", Rows: []model.SessionRow{
				row("Peled David", "20", "10"),
			}},
		},
	}
}

func TestService_Run(t *testing.T) {
	Convey("Given a service over a two-identity roster and two sessions", t, func() {
		ctx := context.Background()
		sessions := classSessions()
		sink := &memSink{}
		svc := service.New(
			service.WithRosterSource(memRoster{table: rosterTable(
				[]string{"1", "David Peled"},
				[]string{"2", "Noa Bar"},
			)}),
			service.WithSessionSource(sessions),
			service.WithReportSink(sink),
			service.WithWorkerCount(2),
		)

		Convey("When the pipeline runs", func() {
			res, err := svc.Run(ctx)
			So(err, ShouldBeNil)

			Convey("Then it gets a run id and merges sessions in lexicographic order", func() {
				So(res.RunID, ShouldHaveLength, 36)
				So(res.Sessions, ShouldResemble, []string{"q1", "q2"})
				So(sessions.loaded, ShouldHaveLength, 2)
			})

			Convey("Then reconnects are summed without capping correct answers", func() {
				david := res.Records[0]
				So(david.Key, ShouldEqual, "1")
				So(david.First, ShouldEqual, "David")
				So(david.Last, ShouldEqual, "Peled")
				So(david.TotalScore, ShouldEqual, 35)
				So(david.SessionGrades, ShouldResemble, []int{100, 100})
				So(david.Points, ShouldEqual, 8)
			})

			Convey("Then an identity absent from a session misses it with grade 0", func() {
				noa := res.Records[1]
				So(noa.Key, ShouldEqual, "2")
				So(noa.Missed, ShouldEqual, 1)
				So(noa.TotalScore, ShouldEqual, 700)
				So(noa.SessionGrades, ShouldResemble, []int{100, 0})
				So(noa.Average, ShouldEqual, 50)
				So(noa.Points, ShouldEqual, 4)
			})

			Convey("Then unresolved names are kept under their label and reported", func() {
				stranger := res.Records[2]
				So(stranger.Key, ShouldEqual, "danger stranger")
				So(stranger.First, ShouldBeEmpty)
				So(res.Hints, ShouldHaveLength, 1)
				So(res.Hints[0].Label, ShouldEqual, "danger stranger")
				So(res.Report.Unresolved, ShouldResemble, []string{"danger stranger"})
			})

			Convey("Then the stats count every row", func() {
				So(res.Stats.Identities, ShouldEqual, 2)
				So(res.Stats.Sessions, ShouldEqual, 2)
				So(res.Stats.Rows, ShouldEqual, 6)
				So(res.Stats.Dropped, ShouldEqual, 1)
				So(res.Stats.Merges, ShouldEqual, 1)
				So(res.Stats.Unresolved, ShouldEqual, 1)
				So(res.Stats.Graded, ShouldEqual, 3)
			})

			Convey("Then the report goes to the sink", func() {
				So(res.Output, ShouldEqual, "mem://report.xlsx")
				So(sink.written, ShouldHaveLength, 1)

				final, ok := sink.written[0].Sheet(report.SheetFinal)
				So(ok, ShouldBeTrue)
				So(final.Columns, ShouldResemble, []string{"ID", "First Name", "Last Name", "q1 Grade", "q2 Grade", "Average", "Points"})
				So(final.Rows[1], ShouldResemble, []any{"2", "Noa", "Bar", 100, 0, 50, 4})

				scores, ok := sink.written[0].Sheet(report.SheetScores)
				So(ok, ShouldBeTrue)
				So(scores.Rows[1][4], ShouldBeNil)
			})
		})
	})
}

func TestService_RunErrors(t *testing.T) {
	Convey("Given misconfigured or failing collaborators", t, func() {
		ctx := context.Background()
		goodRoster := memRoster{table: rosterTable([]string{"1", "David Peled"})}

		Convey("When no sources are configured", func() {
			_, err := service.New().Run(ctx)

			Convey("Then it reports the missing configuration", func() {
				So(errors.Is(err, service.ErrNotConfigured), ShouldBeTrue)
			})
		})

		Convey("When the roster lacks its columns", func() {
			sessions := classSessions()
			svc := service.New(
				service.WithRosterSource(memRoster{table: model.Table{Header: []string{"Student"}}}),
				service.WithSessionSource(sessions),
			)
			_, err := svc.Run(ctx)

			Convey("Then it aborts before reading any session", func() {
				So(errors.Is(err, roster.ErrMalformedRoster), ShouldBeTrue)
				So(sessions.loaded, ShouldBeEmpty)
			})
		})

		Convey("When the roster cannot be read", func() {
			boom := errors.New("disk gone")
			_, err := service.New(
				service.WithRosterSource(memRoster{err: boom}),
				service.WithSessionSource(classSessions()),
			).Run(ctx)

			Convey("Then the cause is wrapped", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
			})
		})

		Convey("When strict roster mode sees a name collision", func() {
			_, err := service.New(
				service.WithRosterSource(memRoster{table: rosterTable(
					[]string{"1", "David Peled"},
					[]string{"9", "Peled David"},
				)}),
				service.WithSessionSource(classSessions()),
				service.WithStrictRoster(true),
			).Run(ctx)

			Convey("Then the run fails", func() {
				So(errors.Is(err, roster.ErrNameKeyCollision), ShouldBeTrue)
			})
		})

		Convey("When the grading policy is invalid", func() {
			p := grading.DefaultPolicy()
			p.TopN = 0
			_, err := service.New(
				service.WithRosterSource(goodRoster),
				service.WithSessionSource(classSessions()),
				service.WithPolicy(p),
			).Run(ctx)

			Convey("Then the run fails validation", func() {
				So(errors.Is(err, grading.ErrInvalidPolicy), ShouldBeTrue)
			})
		})

		Convey("When a session holds a non-numeric score", func() {
			sessions := &memSessions{
				order: []string{"bad.xlsx"},
				sessions: map[string]model.Session{
					"bad.xlsx": {Name: "bad", Rows: []model.SessionRow{row("David Peled", "lots", "3")}},
				},
			}
			_, err := service.New(
				service.WithRosterSource(goodRoster),
				service.WithSessionSource(sessions),
			).Run(ctx)

			Convey("Then the invalid cell is reported", func() {
				var scoreErr *resolve.InvalidScoreError
				So(errors.As(err, &scoreErr), ShouldBeTrue)
				So(scoreErr.Row, ShouldEqual, 1)
			})
		})

		Convey("When two sources map to the same session name", func() {
			sessions := &memSessions{
				order: []string{"q1.xlsx", "q1.XLSX"},
				sessions: map[string]model.Session{
					"q1.xlsx": {Name: "q1"},
					"q1.XLSX": {Name: "q1"},
				},
			}
			_, err := service.New(
				service.WithRosterSource(goodRoster),
				service.WithSessionSource(sessions),
			).Run(ctx)

			Convey("Then the merge rejects the duplicate", func() {
				So(errors.Is(err, merge.ErrDuplicateSession), ShouldBeTrue)
			})
		})

		Convey("When listing sessions fails", func() {
			boom := errors.New("no reports")
			_, err := service.New(
				service.WithRosterSource(goodRoster),
				service.WithSessionSource(&memSessions{listErr: boom}),
			).Run(ctx)

			Convey("Then the cause is wrapped", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
			})
		})

		Convey("When the sink fails", func() {
			boom := errors.New("read-only")
			_, err := service.New(
				service.WithRosterSource(goodRoster),
				service.WithSessionSource(classSessions()),
				service.WithReportSink(&memSink{err: boom}),
			).Run(ctx)

			Convey("Then the cause is wrapped", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
			})
		})

		Convey("When no sink is configured", func() {
			res, err := service.New(
				service.WithRosterSource(goodRoster),
				service.WithSessionSource(classSessions()),
				service.WithSuggestDistance(0),
			).Run(ctx)

			Convey("Then the report is only returned", func() {
				So(err, ShouldBeNil)
				So(res.Output, ShouldBeEmpty)
				So(res.Report.Sheets, ShouldHaveLength, 4)
			})
		})
	})
}
