package lastpass

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	pkgerrors "github.com/agentstation/vaultsync/pkg/errors"
	"github.com/agentstation/vaultsync/pkg/vault"
)

const exportSource = "lpass export"

// columnIndex maps export columns to entry fields. -1 means the column is
// absent from this export.
type columnIndex struct {
	url      int
	username int
	password int
	name     int
	notes    int
	folder   int
}

// parseExport decodes the `lpass export` CSV. lpass has shifted column
// names across versions, so notes accepts extra and folder accepts
// grouping. Extra columns like totp and fav are ignored. Row order is
// preserved and rows are never deduplicated here.
func parseExport(data []byte) ([]vault.Entry, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, pkgerrors.NewParseError("csv", exportSource, "empty export output", nil)
	}
	if err != nil {
		return nil, parseError(err, "invalid header")
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var entries []vault.Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(err, "malformed row")
		}

		entries = append(entries, vault.Entry{
			URL:      field(record, idx.url),
			Username: field(record, idx.username),
			Password: field(record, idx.password),
			Name:     field(record, idx.name),
			Notes:    field(record, idx.notes),
			Folder:   field(record, idx.folder),
		})
	}
	return entries, nil
}

// indexColumns locates each entry field in the header. The first matching
// column wins when an export carries both a name and its alias.
func indexColumns(header []string) (columnIndex, error) {
	idx := columnIndex{url: -1, username: -1, password: -1, name: -1, notes: -1, folder: -1}

	for i, column := range header {
		switch strings.ToLower(strings.TrimSpace(column)) {
		case "url":
			if idx.url < 0 {
				idx.url = i
			}
		case "username":
			if idx.username < 0 {
				idx.username = i
			}
		case "password":
			if idx.password < 0 {
				idx.password = i
			}
		case "name":
			if idx.name < 0 {
				idx.name = i
			}
		case "notes", "extra":
			if idx.notes < 0 {
				idx.notes = i
			}
		case "folder", "grouping":
			if idx.folder < 0 {
				idx.folder = i
			}
		}
	}

	required := []struct {
		name string
		pos  int
	}{
		{"url", idx.url},
		{"username", idx.username},
		{"password", idx.password},
		{"name", idx.name},
	}
	for _, col := range required {
		if col.pos < 0 {
			return idx, pkgerrors.NewParseError("csv", exportSource,
				fmt.Sprintf("missing required column %q", col.name), nil)
		}
	}
	return idx, nil
}

// field reads one cell, normalizing absent columns to "".
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// parseError converts an encoding/csv error, carrying its line number when
// one is available.
func parseError(err error, message string) error {
	perr := pkgerrors.NewParseError("csv", exportSource, message+": "+err.Error(), err)
	var csvErr *csv.ParseError
	if stderrors.As(err, &csvErr) {
		perr.Line = csvErr.Line
	}
	return perr
}
