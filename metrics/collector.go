package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/notargets/scaffoldgroup/regroup"
)

// Collector records regroup runs on its own registry, suitable for a textfile export
type Collector struct {
	registry  *prometheus.Registry
	removed   *prometheus.CounterVec
	added     *prometheus.CounterVec
	faceGroup *prometheus.GaugeVec
	warnings  *prometheus.CounterVec
	runs      *prometheus.CounterVec
	duration  prometheus.Histogram
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		removed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scaffoldgroup_removed_elements_total",
				Help: "Face elements removed from a group",
			},
			[]string{"group"},
		),
		added: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scaffoldgroup_added_elements_total",
				Help: "Face elements added to a group when rebuilding",
			},
			[]string{"group"},
		),
		faceGroup: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scaffoldgroup_face_group_elements",
				Help: "Face group size after the last rebuild",
			},
			[]string{"group"},
		),
		warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scaffoldgroup_warnings_total",
				Help: "Group entries skipped with a warning",
			},
			[]string{"kind"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scaffoldgroup_runs_total",
				Help: "Completed runs by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scaffoldgroup_run_duration_seconds",
				Help:    "Duration of a run from load to save",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),
	}
	c.registry.MustRegister(c.removed, c.added, c.faceGroup, c.warnings, c.runs, c.duration)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) GroupRebuilt(report regroup.GroupReport) {
	c.removed.WithLabelValues(report.Name).Add(float64(report.Removed))
	c.added.WithLabelValues(report.Name).Add(float64(report.Added))
	c.faceGroup.WithLabelValues(report.Name).Set(float64(report.After))
}

func (c *Collector) Warned(w regroup.Warning) {
	c.warnings.WithLabelValues(w.Kind.String()).Inc()
}

// ObserveRun records the outcome and duration of a run
func (c *Collector) ObserveRun(elapsed time.Duration, err error) {
	c.runs.WithLabelValues(Outcome(err)).Inc()
	c.duration.Observe(elapsed.Seconds())
}

// Outcome names the failure class of a run error, "ok" for nil
func Outcome(err error) string {
	var (
		loadErr *regroup.LoadError
		kwErr   *regroup.InvalidSurfaceKeywordError
		saveErr *regroup.SaveError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &loadErr):
		return "load_error"
	case errors.As(err, &kwErr):
		return "invalid_keyword"
	case errors.As(err, &saveErr):
		return "save_error"
	}
	return "error"
}

// WriteTextfile writes every metric in the text exposition format, atomically
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
