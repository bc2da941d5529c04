package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-logger-backend/internal/parse"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil))
	return buf.Bytes()
}

var mp4Bytes = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'm', 'p', '4', '1'}

func TestSaveMachinePhoto(t *testing.T) {
	root := filepath.Join(t.TempDir(), "media", "customers")
	s, err := NewStorage(root)
	require.NoError(t, err)

	path, err := s.SaveMachinePhoto("c1", "m1", Upload{Filename: "front.jpg", Data: jpegBytes(t)})
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(root, "c1", "machines", "m1", "front.jpg")), path)

	data, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ContentType(data))

	_, err = s.SaveMachinePhoto("c1", "m1", Upload{Filename: "clip.mp4", Data: mp4Bytes})
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	_, err = s.SaveMachinePhoto("c1", "m1", Upload{Filename: "empty.png"})
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestSaveJobMedia(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	found, err := s.SaveJobMedia("c1", "j1", StageFound, Upload{Filename: "before.png", Data: pngBytes(t)})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(found, "c1/jobs/j1/found/before.png"))

	left, err := s.SaveJobMedia("c1", "j1", StageLeft, Upload{Filename: "after.mp4", Data: mp4Bytes})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(left, "c1/jobs/j1/left/after.mp4"))
	assert.True(t, IsVideo(left))

	// Same name twice keeps both files.
	again, err := s.SaveJobMedia("c1", "j1", StageLeft, Upload{Filename: "after.mp4", Data: mp4Bytes})
	require.NoError(t, err)
	assert.NotEqual(t, left, again)

	_, err = s.SaveJobMedia("c1", "j1", Stage("during"), Upload{Filename: "x.png", Data: pngBytes(t)})
	assert.Error(t, err)

	_, err = s.SaveJobMedia("c1", "j1", StageFound, Upload{Filename: "notes.txt", Data: []byte("plain text")})
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestUploadNameCannotEscapeDirectory(t *testing.T) {
	root := t.TempDir()
	s, err := NewStorage(root)
	require.NoError(t, err)

	path, err := s.SaveMachinePhoto("c1", "m1", Upload{Filename: "../../evil.png", Data: pngBytes(t)})
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(root, "c1", "machines", "m1", "evil.png")), path)

	path, err = s.SaveMachinePhoto("c1", "m1", Upload{Filename: "", Data: pngBytes(t)})
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(path))
}

func TestUploadNameKeepsListSeparatorOut(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	path, err := s.SaveJobMedia("c1", "j1", StageFound, Upload{Filename: "before;1.jpg", Data: jpegBytes(t)})
	require.NoError(t, err)
	assert.Equal(t, "before_1.jpg", filepath.Base(path))
	assert.Equal(t, []string{path}, parse.List(parse.JoinList([]string{path})))
}

func TestCheckUploads(t *testing.T) {
	tests := []struct {
		name     string
		check    func(Upload) error
		data     []byte
		accepted bool
	}{
		{"photo jpg", CheckPhoto, jpegBytes(t), true},
		{"photo png", CheckPhoto, pngBytes(t), true},
		{"photo mp4", CheckPhoto, mp4Bytes, false},
		{"photo empty", CheckPhoto, nil, false},
		{"job media mp4", CheckJobMedia, mp4Bytes, true},
		{"job media text", CheckJobMedia, []byte("plain text"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(Upload{Filename: "upload", Data: tt.data})
			if tt.accepted {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedMedia)
			}
		})
	}
}

func TestSaveSignature(t *testing.T) {
	root := t.TempDir()
	s, err := NewStorage(root)
	require.NoError(t, err)

	path, err := s.SaveSignature("c1", "j1", pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(filepath.Join(root, "c1", "jobs", "j1", "signature", "j1_sig.png")), path)

	require.NoError(t, s.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Remove(path))
}

func TestDecodeSignature(t *testing.T) {
	raw := pngBytes(t)
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	testCases := []struct {
		name      string
		input     []byte
		expectErr bool
	}{
		{name: "Raw PNG", input: raw},
		{name: "Data URL", input: []byte(dataURL)},
		{name: "Data URL with padding whitespace", input: []byte("  " + dataURL + "\n")},
		{name: "JPEG data URL", input: []byte("data:image/jpeg;base64,AAAA"), expectErr: true},
		{name: "Broken base64", input: []byte("data:image/png;base64,!!!"), expectErr: true},
		{name: "Not an image", input: []byte("hello"), expectErr: true},
		{name: "Empty", input: nil, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeSignature(tc.input)
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrInvalidSignature)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, raw, got)
			}
		})
	}
}
