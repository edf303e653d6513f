package out

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"tvshell/internal/modules/telemetry/domain"
	telemetryout "tvshell/internal/modules/telemetry/port/out"
)

var (
	ErrSinkClosed = errors.New("telemetry sink closed")
	ErrBufferFull = errors.New("telemetry buffer full")
)

// JSONLSink writes records as JSON lines from a single background goroutine.
type JSONLSink struct {
	writeCh chan domain.Record
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	logger  *lumberjack.Logger
}

func NewJSONLSink(path string, bufferSize int) (*JSONLSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create telemetry dir: %w", err)
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}
	s := &JSONLSink{
		writeCh: make(chan domain.Record, bufferSize),
		done:    make(chan struct{}),
		logger: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     30,
		},
	}
	s.wg.Add(1)
	go s.writeLoop()
	return s, nil
}

var _ telemetryout.Sink = (*JSONLSink)(nil)

func (s *JSONLSink) Write(record domain.Record) error {
	select {
	case <-s.done:
		return ErrSinkClosed
	default:
	}
	select {
	case s.writeCh <- record:
		return nil
	default:
		return ErrBufferFull
	}
}

// Close stops accepting records, flushes what is queued and closes the file.
func (s *JSONLSink) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		timeout := time.After(2 * time.Second)
	drain:
		for {
			select {
			case record := <-s.writeCh:
				s.writeRecord(record)
			case <-timeout:
				slog.Warn("telemetry close timeout, records lost", "pending", len(s.writeCh))
				break drain
			default:
				break drain
			}
		}
		err = s.logger.Close()
	})
	return err
}

func (s *JSONLSink) writeLoop() {
	defer s.wg.Done()
	for {
		select {
		case record := <-s.writeCh:
			s.writeRecord(record)
		case <-s.done:
			return
		}
	}
}

func (s *JSONLSink) writeRecord(record domain.Record) {
	data, err := json.Marshal(record)
	if err != nil {
		slog.Warn("marshal telemetry record", "error", err)
		return
	}
	if _, err := s.logger.Write(append(data, '\n')); err != nil {
		slog.Warn("write telemetry record", "error", err)
	}
}
