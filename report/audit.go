package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/soderasen-au/go-common/util"
)

// AuditRecord is one issue-sheet run in the append-only audit log.
type AuditRecord struct {
	Timestamp      time.Time
	ModelFile      string
	ReportFileName string
	ReportFileSize int
	SheetCount     int
	RevisionCount  int
	PageCount      int
}

func (f AuditRecord) GetCSVLine() []string {
	return []string{
		f.Timestamp.Format(time.RFC3339),
		f.ModelFile,
		f.ReportFileName,
		fmt.Sprintf("%d", f.ReportFileSize),
		fmt.Sprintf("%d", f.SheetCount),
		fmt.Sprintf("%d", f.RevisionCount),
		fmt.Sprintf("%d", f.PageCount),
	}
}

func GetCSVHeader() string {
	return fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v\n", "Timestamp", "ModelFile", "FileName", "FileSize", "Sheets", "Revisions", "Pages")
}

type AuditLog struct {
	fileName string
	fd       *os.File
	writer   *csv.Writer
	mu       sync.Mutex
}

func (audit *AuditLog) Close() {
	if audit.fd != nil {
		audit.fd.Close()
	}
}

func (audit *AuditLog) Record(r AuditRecord) *util.Result {
	audit.mu.Lock()
	defer audit.mu.Unlock()

	if audit.writer == nil {
		return util.MsgError("CheckWriter", "audit log is not opened")
	}

	if err := audit.writer.Write(r.GetCSVLine()); err != nil {
		return util.Error("Write", err)
	}
	audit.writer.Flush()

	return nil
}

func (audit *AuditLog) OpenFile(fn string) *util.Result {
	f, err := os.OpenFile(fn, os.O_RDWR|os.O_CREATE, os.ModePerm)
	if err != nil {
		return util.Error("OpenFile", err)
	}
	audit.fileName = fn
	audit.fd = f

	scanner := bufio.NewScanner(f)
	hasHeader := false
	if scanner.Scan() {
		line := scanner.Text()
		hasHeader = strings.HasPrefix(line, "Timestamp,")
	}

	if _, err := f.Seek(0, 2); err != nil {
		return util.Error("Seek", err)
	}
	if !hasHeader {
		if _, err := f.WriteString(GetCSVHeader()); err != nil {
			return util.Error("WriteHeader", err)
		}
	}

	audit.writer = csv.NewWriter(f)
	return nil
}

func NewAuditLog(fn string) (*AuditLog, *util.Result) {
	auditLog := &AuditLog{}
	res := auditLog.OpenFile(fn)
	if res != nil {
		return nil, res.With("OpenFile")
	}
	return auditLog, nil
}
