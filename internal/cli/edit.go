package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/OpenSpeaks/openspeaks-subtitler/internal/logging"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/media"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/session"
	"github.com/OpenSpeaks/openspeaks-subtitler/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit [media_file]",
	Short: "Open the interactive timing editor",
	Long: `Open the timing editor for a media file.

The editor shows the cues on a zoomable timeline. Drag a cue to move it,
drag its edges to retime it, click empty track to seek, and double-click
empty track to create a cue. Edits are saved automatically.

The subtitle file defaults to the media file's name with an .srt
extension, and is created on first save when missing.

Examples:
  subtitler edit talk.mp4
  subtitler edit talk.mp4 --subtitles talk.de.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().
		StringP("subtitles", "s", "", "Subtitle file to edit (default: <media>.srt)")
	editCmd.Flags().
		String("log-file", "", "Write logs to this file instead of stderr")
}

func runEdit(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !media.IsMediaFile(mediaPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	subtitlePath, _ := cmd.Flags().GetString("subtitles")
	if subtitlePath == "" {
		subtitlePath = strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".srt"
	}

	duration, err := media.Duration(mediaPath)
	if err != nil {
		return fmt.Errorf("failed to read media duration: %w", err)
	}

	// the TUI owns the terminal, so logs go to a file
	sessLogger := logging.NewNop()
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
		sessLogger = logging.NewFileLogger(logFile, verbose)
	}

	sess, err := session.New(session.Config{
		MediaPath:    mediaPath,
		SubtitlePath: subtitlePath,
		Source:       media.NewClock(duration),
		Logger:       sessLogger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		ui.NewModel(sess),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		_ = sess.Close()
		return fmt.Errorf("editor failed: %w", err)
	}

	return nil
}
