// Package metrics publishes dashboard health numbers to CloudWatch.
// file: metrics/metrics.go
package metrics

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"

	"civil-quest-admin/listview"
	"civil-quest-admin/logger"
)

// Publisher records the dashboard's metrics.
type Publisher interface {
	MutationLatency(collection string, d time.Duration)
	MutationFailed(collection string)
	OptimisticPatchReverted(collection string)
	DashboardConnections(count int)
}

// NoopPublisher drops every metric. Used when METRICS_ENABLED is off.
type NoopPublisher struct{}

func (NoopPublisher) MutationLatency(string, time.Duration) {}
func (NoopPublisher) MutationFailed(string)                 {}
func (NoopPublisher) OptimisticPatchReverted(string)        {}
func (NoopPublisher) DashboardConnections(int)              {}

// CloudWatch sends each metric as one PutMetricData call.
type CloudWatch struct {
	client    cloudwatchiface.CloudWatchAPI
	namespace string
	now       func() time.Time
}

// NewCloudWatch creates a publisher using the default AWS credential chain.
func NewCloudWatch(namespace string) (*CloudWatch, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}
	return NewCloudWatchWithClient(cloudwatch.New(sess), namespace), nil
}

// NewCloudWatchWithClient creates a publisher over an existing client.
func NewCloudWatchWithClient(client cloudwatchiface.CloudWatchAPI, namespace string) *CloudWatch {
	return &CloudWatch{client: client, namespace: namespace, now: time.Now}
}

// MutationLatency pushes how long a create/edit/approve/delete call took (in ms).
func (p *CloudWatch) MutationLatency(collection string, d time.Duration) {
	p.putMetric("MutationLatencyMs", float64(d.Milliseconds()), cloudwatch.StandardUnitMilliseconds, collection)
}

// MutationFailed counts API calls that returned an error.
func (p *CloudWatch) MutationFailed(collection string) {
	p.putMetric("MutationFailed", 1, cloudwatch.StandardUnitCount, collection)
}

// OptimisticPatchReverted counts patches the re-fetch undid.
func (p *CloudWatch) OptimisticPatchReverted(collection string) {
	p.putMetric("OptimisticPatchReverted", 1, cloudwatch.StandardUnitCount, collection)
}

// DashboardConnections pushes the open websocket count.
func (p *CloudWatch) DashboardConnections(count int) {
	p.putMetric("DashboardConnections", float64(count), cloudwatch.StandardUnitCount, "")
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func (p *CloudWatch) putMetric(metricName string, value float64, unit string, collection string) {
	datum := &cloudwatch.MetricDatum{
		MetricName: aws.String(metricName),
		Timestamp:  aws.Time(p.now()),
		Value:      aws.Float64(value),
		Unit:       aws.String(unit),
	}
	if collection != "" {
		datum.Dimensions = []*cloudwatch.Dimension{{
			Name:  aws.String("Collection"),
			Value: aws.String(collection),
		}}
	}

	_, err := p.client.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(p.namespace),
		MetricData: []*cloudwatch.MetricDatum{datum},
	})
	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}

// Recorder turns list view reconciliations into metrics.
type Recorder struct {
	pub Publisher
}

var _ listview.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder publishing to pub.
func NewRecorder(pub Publisher) *Recorder {
	return &Recorder{pub: pub}
}

// Observe implements listview.Observer. Only reconciliations carry a call outcome.
func (r *Recorder) Observe(ch listview.Change) {
	if ch.Kind != listview.Reconciled {
		return
	}
	r.pub.MutationLatency(ch.Collection, ch.Duration)
	if ch.Err != nil {
		r.pub.MutationFailed(ch.Collection)
	}
	if ch.Reverted {
		r.pub.OptimisticPatchReverted(ch.Collection)
	}
}
