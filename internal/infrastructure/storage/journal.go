package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const journalVersion = 1

// Header - первая строка файла журнала. Зерна достаточно, чтобы
// воспроизвести сессию: весь рандом сессии выводится из него.
type Header struct {
	Version    int   `json:"version"`
	Seed       int64 `json:"seed"`
	RecordedAt int64 `json:"recorded_at"`
}

// Record - одна команда. Turn записывается на момент приема команды
// и служит для сверки рассинхрона при проигрывании.
type Record struct {
	Turn    int             `json:"turn"`
	Action  string          `json:"action"`
	Token   string          `json:"token,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Journal пишет команды сессии в JSONL-файл: заголовок первой
// строкой, затем по записи на команду. Формат построчный, чтобы
// оборванный файл оставался читаемым до места обрыва.
type Journal struct {
	f   *os.File
	enc *json.Encoder
}

// Create открывает журнал на запись и пишет заголовок.
func Create(path string, seed int64) (*Journal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}

	j := &Journal{f: f, enc: json.NewEncoder(f)}
	header := Header{
		Version:    journalVersion,
		Seed:       seed,
		RecordedAt: time.Now().Unix(),
	}
	if err := j.enc.Encode(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write journal header: %w", err)
	}
	return j, nil
}

// Append дописывает запись.
func (j *Journal) Append(rec Record) error {
	return j.enc.Encode(rec)
}

// Close сбрасывает и закрывает файл.
func (j *Journal) Close() error {
	if err := j.f.Sync(); err != nil {
		_ = j.f.Close()
		return err
	}
	return j.f.Close()
}

// Load читает журнал целиком: заголовок и записи.
func Load(path string) (Header, []Record, error) {
	var header Header

	f, err := os.Open(path)
	if err != nil {
		return header, nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return header, nil, fmt.Errorf("journal is empty")
	}
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return header, nil, fmt.Errorf("bad journal header: %w", err)
	}
	if header.Version != journalVersion {
		return header, nil, fmt.Errorf("unsupported journal version %d", header.Version)
	}

	var records []Record
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return header, nil, fmt.Errorf("bad journal record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return header, nil, fmt.Errorf("read journal: %w", err)
	}
	return header, records, nil
}
