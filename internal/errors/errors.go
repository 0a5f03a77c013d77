// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"strings"
)

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrMissingColumns reports which required canonical columns an upload
// lacked, alongside the raw column names it actually carried.
type ErrMissingColumns struct {
	Missing []string
	Present []string
}

func (e *ErrMissingColumns) Error() string {
	present := "none"
	if len(e.Present) > 0 {
		present = strings.Join(e.Present, ", ")
	}
	return fmt.Sprintf("missing required columns: %s (found columns: %s)",
		strings.Join(e.Missing, ", "), present)
}

func NewMissingColumns(missing, present []string) error {
	return &ErrMissingColumns{Missing: missing, Present: present}
}

// ErrEmptyCSV means the upload parsed to zero data rows.
type ErrEmptyCSV struct{}

func (e *ErrEmptyCSV) Error() string {
	return "CSV file is empty"
}

func NewEmptyCSV() error {
	return &ErrEmptyCSV{}
}

// ErrEmptyCampaign means a campaign build was attempted with no posts.
type ErrEmptyCampaign struct{}

func (e *ErrEmptyCampaign) Error() string {
	return "campaign must contain at least one post"
}

func NewEmptyCampaign() error {
	return &ErrEmptyCampaign{}
}

// ErrNoFile means the multipart request carried no "file" field.
type ErrNoFile struct{}

func (e *ErrNoFile) Error() string {
	return "no file provided"
}

func NewNoFile() error {
	return &ErrNoFile{}
}

// ErrInvalidFileType rejects anything that is not a CSV upload.
type ErrInvalidFileType struct {
	Filename string
}

func (e *ErrInvalidFileType) Error() string {
	return fmt.Sprintf("invalid file type: %s (only .csv files are accepted)", e.Filename)
}

func NewInvalidFileType(filename string) error {
	return &ErrInvalidFileType{Filename: filename}
}

// ErrFileTooLarge rejects uploads over the configured size cap.
type ErrFileTooLarge struct {
	LimitBytes int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file exceeds the %d MB upload limit", e.LimitBytes/(1024*1024))
}

func NewFileTooLarge(limitBytes int64) error {
	return &ErrFileTooLarge{LimitBytes: limitBytes}
}
