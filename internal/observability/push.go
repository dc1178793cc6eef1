package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushJob is the Pushgateway job name the run's metrics are grouped under.
const PushJob = "traffic_report"

// Push replaces the job's metric group on the Pushgateway at url with the
// current contents of g. A one-shot run exits before any scraper could reach
// it, so this is how its metrics leave the process.
func Push(ctx context.Context, url string, g prometheus.Gatherer) error {
	if err := push.New(url, PushJob).Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
