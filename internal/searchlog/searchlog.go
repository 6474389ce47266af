// Package searchlog appends search records to a remote append-only CSV blob.
// Logging is strictly best-effort: every failure is warned about and
// swallowed so it can never affect the response to the caller.
package searchlog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/appendblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

const header = "timestamp_utc,query,category,method"

// Logger serializes search records into an Azure append blob. The zero-value
// configuration (empty connection string) yields a disabled logger whose Log
// is a no-op. A single mutex serializes appends so concurrent requests keep
// their relative order and at most one append is in flight.
type Logger struct {
	connString string
	container  string
	blob       string

	mu     sync.Mutex
	client *appendblob.Client
}

func New(connString, container, blob string) *Logger {
	return &Logger{connString: connString, container: container, blob: blob}
}

// Enabled reports whether a sink is configured.
func (l *Logger) Enabled() bool {
	return l != nil && l.connString != ""
}

// Log appends one (timestamp, query, category, method) record. It never
// returns an error; failures are logged as warnings and dropped.
func (l *Logger) Log(ctx context.Context, query, category, method string) {
	if !l.Enabled() {
		return
	}

	record := encodeRecord(time.Now().UTC(), query, category, method)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.append(ctx, record); err != nil {
		slog.Warn("search log append failed", "error", err)
	}
}

func (l *Logger) append(ctx context.Context, record []byte) error {
	client, err := l.ensureClient(ctx)
	if err != nil {
		return err
	}

	_, err = client.AppendBlock(ctx, streaming.NopCloser(bytes.NewReader(record)), nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		// Blob got deleted (or this is the first record): recreate it with
		// the header row in front of the record.
		if _, err := client.Create(ctx, nil); err != nil {
			return fmt.Errorf("recreating log blob: %w", err)
		}
		payload := append([]byte(header+"\n"), record...)
		_, err = client.AppendBlock(ctx, streaming.NopCloser(bytes.NewReader(payload)), nil)
	}
	if err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	return nil
}

// ensureClient lazily builds the blob client and the container on first use.
// Callers hold l.mu.
func (l *Logger) ensureClient(ctx context.Context) (*appendblob.Client, error) {
	if l.client != nil {
		return l.client, nil
	}

	svc, err := azblob.NewClientFromConnectionString(l.connString, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to storage: %w", err)
	}
	if _, err := svc.CreateContainer(ctx, l.container, nil); err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("ensuring container %s: %w", l.container, err)
	}

	client, err := appendblob.NewClientFromConnectionString(l.connString, l.container, l.blob, nil)
	if err != nil {
		return nil, fmt.Errorf("opening log blob: %w", err)
	}
	l.client = client
	return client, nil
}

func encodeRecord(ts time.Time, query, category, method string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{ts.Format(time.RFC3339), query, category, method})
	w.Flush()
	return buf.Bytes()
}
