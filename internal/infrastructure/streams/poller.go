// Package streams turns the table's DynamoDB stream into change events for
// the in-process broadcaster, so writes from other service instances reach
// local subscribers too.
package streams

import (
	"context"
	"log"
	"time"

	"os_escolpi/internal/realtime"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodbstreams"
	streamtypes "github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"
)

const defaultPollInterval = 2 * time.Second

// Poller tails the table's stream and republishes every record as a
// ChangeEvent. Shards are read from LATEST: history before startup is not
// replayed because subscribers always start with a full initial read anyway.
type Poller struct {
	ddb       *dynamodb.Client
	streams   *dynamodbstreams.Client
	tableName string
	feed      *realtime.Broadcaster
	interval  time.Duration

	streamArn string
	iterators map[string]string // shardID -> next iterator
}

func NewPoller(ddb *dynamodb.Client, streams *dynamodbstreams.Client, tableName string, feed *realtime.Broadcaster) *Poller {
	return &Poller{
		ddb:       ddb,
		streams:   streams,
		tableName: tableName,
		feed:      feed,
		interval:  defaultPollInterval,
		iterators: make(map[string]string),
	}
}

// Start blocks polling the stream until ctx is cancelled. It is meant to run
// on its own goroutine.
func (p *Poller) Start(ctx context.Context) {
	out, err := p.ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(p.tableName),
	})
	if err != nil {
		log.Printf("[streams][poller] describe table failed table=%s err=%v", p.tableName, err)
		return
	}
	if out.Table.LatestStreamArn == nil || *out.Table.LatestStreamArn == "" {
		log.Printf("[streams][poller] table has no stream enabled table=%s", p.tableName)
		return
	}
	p.streamArn = *out.Table.LatestStreamArn

	log.Printf("[streams][poller] started table=%s stream=%s", p.tableName, p.streamArn)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[streams][poller] stopped table=%s", p.tableName)
			return
		case <-ticker.C:
			if err := p.poll(ctx); err != nil {
				log.Printf("[streams][poller] poll failed err=%v", err)
			}
		}
	}
}

func (p *Poller) poll(ctx context.Context) error {
	if err := p.refreshShards(ctx); err != nil {
		return err
	}

	for shardID, iterator := range p.iterators {
		out, err := p.streams.GetRecords(ctx, &dynamodbstreams.GetRecordsInput{
			ShardIterator: aws.String(iterator),
		})
		if err != nil {
			// Expired iterators are recovered on the next refresh.
			delete(p.iterators, shardID)
			log.Printf("[streams][poller] get records failed shard=%s err=%v", shardID, err)
			continue
		}

		for _, record := range out.Records {
			p.publish(record)
		}

		if out.NextShardIterator == nil {
			// Shard closed for good.
			delete(p.iterators, shardID)
			continue
		}
		p.iterators[shardID] = *out.NextShardIterator
	}
	return nil
}

// refreshShards discovers shards we are not tailing yet and opens a LATEST
// iterator for each.
func (p *Poller) refreshShards(ctx context.Context) error {
	out, err := p.streams.DescribeStream(ctx, &dynamodbstreams.DescribeStreamInput{
		StreamArn: aws.String(p.streamArn),
	})
	if err != nil {
		return err
	}

	for _, shard := range out.StreamDescription.Shards {
		if shard.ShardId == nil {
			continue
		}
		if _, ok := p.iterators[*shard.ShardId]; ok {
			continue
		}

		iter, err := p.streams.GetShardIterator(ctx, &dynamodbstreams.GetShardIteratorInput{
			StreamArn:         aws.String(p.streamArn),
			ShardId:           shard.ShardId,
			ShardIteratorType: streamtypes.ShardIteratorTypeLatest,
		})
		if err != nil {
			log.Printf("[streams][poller] get shard iterator failed shard=%s err=%v", *shard.ShardId, err)
			continue
		}
		if iter.ShardIterator != nil {
			p.iterators[*shard.ShardId] = *iter.ShardIterator
		}
	}
	return nil
}

func (p *Poller) publish(record streamtypes.Record) {
	var changeType realtime.ChangeType
	switch record.EventName {
	case streamtypes.OperationTypeInsert:
		changeType = realtime.ChangeInsert
	case streamtypes.OperationTypeModify:
		changeType = realtime.ChangeModify
	case streamtypes.OperationTypeRemove:
		changeType = realtime.ChangeRemove
	default:
		return
	}

	orderID := ""
	if record.Dynamodb != nil {
		if member, ok := record.Dynamodb.Keys["id"].(*streamtypes.AttributeValueMemberS); ok {
			orderID = member.Value
		}
	}

	p.feed.Publish(realtime.ChangeEvent{Type: changeType, OrderID: orderID})
}
