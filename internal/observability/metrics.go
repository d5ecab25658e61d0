package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homiee_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "homiee_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// UploadBytesTotal counts stored attachment bytes by kind (post, file, audio, profile).
	UploadBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homiee_upload_bytes_total",
		Help: "Total attachment bytes written to the media store by kind",
	}, []string{"kind"})

	// UploadRejectionsTotal counts attachments rejected by the size ceiling.
	UploadRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homiee_upload_rejections_total",
		Help: "Total attachments rejected for exceeding the size ceiling",
	})

	// ChatMessagesTotal counts chat messages persisted per community and type.
	ChatMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homiee_chat_messages_total",
		Help: "Total chat messages persisted by community and message type",
	}, []string{"community", "message_type"})

	// PostLikesTotal counts like and unlike operations applied to posts.
	PostLikesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homiee_post_likes_total",
		Help: "Total like and unlike operations applied to posts",
	}, []string{"direction"})
)

// RecordChatMessage increments the chat message counter for the community and type.
func RecordChatMessage(community, messageType string) {
	ChatMessagesTotal.WithLabelValues(community, messageType).Inc()
}

// RecordUpload adds stored attachment bytes for the given kind.
func RecordUpload(kind string, size int64) {
	UploadBytesTotal.WithLabelValues(kind).Add(float64(size))
}

// RecordLike increments the like counter in the given direction ("like" or "unlike").
func RecordLike(direction string) {
	PostLikesTotal.WithLabelValues(direction).Inc()
}
