package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metrics are registered under the namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.sessionsProcessed.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_sessions_processed_total")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording pipeline counters", func() {
			before := testutil.ToFloat64(globalManager.rowsRead)
			RecordRowsRead(5)
			RecordSessionProcessed()
			RecordRowsDropped(1)
			RecordRowsUnresolved(2)
			RecordReconnectMerges(1)
			RecordSessionLatency(0.01)
			UpdateRosterIdentities(30)
			RecordRosterCollisions(0)
			UpdateIdentitiesGraded(31)
			RecordRunDuration(0.2)
			RecordError("resolve")

			Convey("Then the values are observable", func() {
				So(testutil.ToFloat64(globalManager.rowsRead)-before, ShouldEqual, 5)
				So(testutil.ToFloat64(globalManager.rosterIdentities), ShouldEqual, 30)
				So(testutil.ToFloat64(globalManager.identitiesGraded), ShouldEqual, 31)
				So(testutil.ToFloat64(globalManager.errorsByStage.WithLabelValues("resolve")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When writing a textfile", func() {
			path := filepath.Join(t.TempDir(), "quizmerge.prom")
			err := WriteTextfile(path)

			Convey("Then the exposition contains pipeline metrics", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(strings.Contains(string(data), "quizmerge_pipeline_rows_read_total"), ShouldBeTrue)
			})
		})

		Convey("When the textfile directory does not exist", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))

			Convey("Then the error is wrapped", func() {
				So(err, ShouldNotBeNil)
				So(strings.Contains(err.Error(), ErrWriteTextfile.Error()), ShouldBeTrue)
			})
		})

		Convey("Then the registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
