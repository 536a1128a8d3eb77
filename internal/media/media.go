package media

import (
	"path/filepath"
	"strings"
)

// Source is the playback transport the editor drives. Implementations
// report playhead position in seconds and accept seeks; Subscribe delivers
// periodic position updates until the returned cancel func is called.
type Source interface {
	CurrentTime() float64
	SetCurrentTime(t float64)
	Duration() float64
	Playing() bool
	Play()
	Pause()
	Subscribe(fn func(t float64)) (cancel func())
	Close() error
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".wmv":  true,
		".flv":  true,
		".webm": true,
		".m4v":  true,
		".mpeg": true,
		".mpg":  true,
		".3gp":  true,
	}
	return videoExts[ext]
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3":  true,
		".wav":  true,
		".aac":  true,
		".flac": true,
		".ogg":  true,
		".m4a":  true,
		".wma":  true,
		".aiff": true,
	}
	return audioExts[ext]
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}
