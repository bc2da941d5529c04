package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"service-logger-backend/internal/parse"
)

// ErrUnsupportedMedia is returned for uploads whose content is not an accepted type.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// Upload is a file received from a form.
type Upload struct {
	Filename string
	Data     []byte
}

// Stage says whether job media shows the machine before or after the visit.
type Stage string

const (
	StageFound Stage = "found"
	StageLeft  Stage = "left"
)

var (
	photoTypes = []string{"image/jpeg", "image/png"}
	jobTypes   = []string{"image/jpeg", "image/png", "video/mp4"}
)

// Storage keeps uploaded media on local disk under a customer-keyed tree:
//
//	<root>/<customer>/machines/<machine>/<file>
//	<root>/<customer>/jobs/<job>/{found,left,signature}/<file>
type Storage struct {
	root string
}

// NewStorage creates the root directory if needed.
func NewStorage(root string) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", root, err)
	}
	return &Storage{root: root}, nil
}

// Root returns the directory all media lives under.
func (s *Storage) Root() string { return s.root }

// SaveMachinePhoto stores a jpg or png machine photo.
func (s *Storage) SaveMachinePhoto(customerID, machineID string, up Upload) (string, error) {
	if err := CheckPhoto(up); err != nil {
		return "", err
	}
	return s.write(filepath.Join(s.root, customerID, "machines", machineID), up)
}

// SaveJobMedia stores a jpg, png or mp4 file for the found or left stage of a job.
func (s *Storage) SaveJobMedia(customerID, jobID string, stage Stage, up Upload) (string, error) {
	if stage != StageFound && stage != StageLeft {
		return "", fmt.Errorf("unknown media stage %q", stage)
	}
	if err := CheckJobMedia(up); err != nil {
		return "", err
	}
	return s.write(filepath.Join(s.root, customerID, "jobs", jobID, string(stage)), up)
}

// SaveSignature stores the signature PNG as <job>_sig.png.
func (s *Storage) SaveSignature(customerID, jobID string, png []byte) (string, error) {
	dir := filepath.Join(s.root, customerID, "jobs", jobID, "signature")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, jobID+"_sig.png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("failed to write signature: %w", err)
	}
	return filepath.ToSlash(path), nil
}

// Read loads a stored file by the path returned from a Save call.
func (s *Storage) Read(path string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(path))
}

// Remove deletes a stored file. Missing files are not an error.
func (s *Storage) Remove(path string) error {
	err := os.Remove(filepath.FromSlash(path))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ContentType sniffs the MIME type of stored or uploaded bytes.
func ContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsVideo reports whether a stored path holds a video file.
func IsVideo(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp4")
}

// CheckPhoto reports ErrUnsupportedMedia unless up is a jpg or png image.
func CheckPhoto(up Upload) error { return checkType(up, photoTypes) }

// CheckJobMedia reports ErrUnsupportedMedia unless up is a jpg, png or mp4 file.
func CheckJobMedia(up Upload) error { return checkType(up, jobTypes) }

func checkType(up Upload, allowed []string) error {
	if len(up.Data) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrUnsupportedMedia, up.Filename)
	}
	mt := mimetype.Detect(up.Data)
	for _, a := range allowed {
		if mt.Is(a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s is %s", ErrUnsupportedMedia, up.Filename, mt.String())
}

func (s *Storage) write(dir string, up Upload) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := cleanName(up)
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(dir, uuid.NewString()[:8]+"_"+name)
	}
	if err := os.WriteFile(path, up.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return filepath.ToSlash(path), nil
}

// cleanName keeps the base name of an upload. The list separator is
// replaced since job media paths share one table cell.
func cleanName(up Upload) string {
	name := filepath.Base(strings.ReplaceAll(up.Filename, "\\", "/"))
	name = strings.ReplaceAll(name, parse.ListSeparator, "_")
	if name == "." || name == "/" || name == ".." || name == "" {
		return uuid.NewString() + mimetype.Detect(up.Data).Extension()
	}
	return name
}
