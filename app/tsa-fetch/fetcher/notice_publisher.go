package fetcher

import (
	"encoding/json"
	"fmt"
	logger "log"
	"time"

	"github.com/nats-io/nats.go"
)

// FetchNotice announces a completed fetch to downstream consumers.
type FetchNotice struct {
	FetchedAt    time.Time `json:"fetched_at"`
	Years        []int     `json:"years"`
	RecordCount  int       `json:"record_count"`
	SkippedRows  int       `json:"skipped_rows"`
	EarliestDate string    `json:"earliest_date"`
	LatestDate   string    `json:"latest_date"`
}

// noticeDestination is where fetch notices should be sent after completion.
type noticeDestination interface {
	Publish(notice *FetchNotice) error
}

// natsNoticeDestination sends fetch notices over nats
type natsNoticeDestination struct {
	natsConn *nats.Conn
	subject  string
}

func (n *natsNoticeDestination) Publish(notice *FetchNotice) error {
	jsonData, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("error marshaling fetch notice to json: error:%v", err)
	}
	return n.natsConn.Publish(n.subject, jsonData)
}

// NoticePublisher announces completed fetches on a noticeDestination
type NoticePublisher struct {
	log               *logger.Logger
	noticeDestination noticeDestination
}

// MakeNATSNoticePublisher builds NoticePublisher sending over natsConn
func MakeNATSNoticePublisher(log *logger.Logger, natsConn *nats.Conn, subject string) *NoticePublisher {
	return &NoticePublisher{
		log:               log,
		noticeDestination: &natsNoticeDestination{natsConn: natsConn, subject: subject},
	}
}

// PublishResult builds a FetchNotice from result and publishes it
func (p *NoticePublisher) PublishResult(result *FetchResult) error {
	notice := FetchNotice{
		FetchedAt:   time.Now().UTC(),
		Years:       result.Years,
		RecordCount: len(result.Records),
		SkippedRows: result.Skipped,
	}
	if len(result.Records) > 0 {
		notice.EarliestDate = result.Records[0].Date.Format("2006-01-02")
		notice.LatestDate = result.Records[len(result.Records)-1].Date.Format("2006-01-02")
	}
	err := p.noticeDestination.Publish(&notice)
	if err != nil {
		return fmt.Errorf("error publishing fetch notice: %w", err)
	}
	p.log.Printf("published fetch notice for %d records", notice.RecordCount)
	return nil
}
