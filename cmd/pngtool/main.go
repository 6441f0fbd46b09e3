// Command pngtool is a thin CLI wrapper around the png package, used
// to exercise Decode/Encode from the shell and to smoke-test images
// against a real PNG decoder/encoder round trip.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	png "github.com/Ciubix8513/lunar-png"
)

var formatNames = map[string]png.PixelFormat{
	"r8":     png.FormatR8,
	"r16":    png.FormatR16,
	"ra8":    png.FormatRa8,
	"ra16":   png.FormatRa16,
	"rgb8":   png.FormatRgb8,
	"rgb16":  png.FormatRgb16,
	"rgba8":  png.FormatRgba8,
	"rgba16": png.FormatRgba16,
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("pngtool failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pngtool",
		Short: "Decode and encode PNG images",
	}
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newEncodeCmd())
	return root
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file.png>",
		Short: "Decode a PNG file and report its pixel format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			img, err := png.Decode(f)
			if err != nil {
				if reason, ok := png.ReasonOf(err); ok {
					return fmt.Errorf("%s: %w (%s)", args[0], err, reason)
				}
				return fmt.Errorf("%s: %w", args[0], err)
			}

			log.Info().
				Str("file", args[0]).
				Uint32("width", img.Width).
				Uint32("height", img.Height).
				Str("format", img.Format.String()).
				Int("bytes", len(img.Data)).
				Msg("decoded png")
			fmt.Printf("%s: %dx%d %s, %d bytes\n", args[0], img.Width, img.Height, img.Format, len(img.Data))
			return nil
		},
	}
}

func newEncodeCmd() *cobra.Command {
	var (
		formatFlag      string
		widthFlag       uint32
		heightFlag      uint32
		compressionFlag string
		timestampFlag   bool
	)

	cmd := &cobra.Command{
		Use:   "encode <in.raw> <out.png>",
		Short: "Encode a tightly packed raw pixel buffer as a PNG file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := formatNames[formatFlag]
			if !ok {
				return fmt.Errorf("unknown --format %q", formatFlag)
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			img := &png.Image{Width: widthFlag, Height: heightFlag, Format: format, Data: raw}

			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer out.Close()

			opts := png.Options{
				Compression:    compressionLevel(compressionFlag),
				WriteTimestamp: timestampFlag,
				Timestamp:      time.Now(),
			}
			if err := png.Encode(out, img, opts); err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}

			log.Info().
				Str("file", args[1]).
				Uint32("width", widthFlag).
				Uint32("height", heightFlag).
				Str("format", formatFlag).
				Msg("encoded png")
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "rgba8", "pixel format of the input buffer")
	cmd.Flags().Uint32Var(&widthFlag, "width", 0, "image width in pixels")
	cmd.Flags().Uint32Var(&heightFlag, "height", 0, "image height in pixels")
	cmd.Flags().StringVar(&compressionFlag, "compression", "default", "compression level: none|fast|best|default")
	cmd.Flags().BoolVar(&timestampFlag, "timestamp", false, "emit a tIME chunk with the current time")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")

	return cmd
}

func compressionLevel(name string) png.CompressionLevel {
	switch name {
	case "none":
		return png.CompressionNone
	case "fast":
		return png.CompressionFast
	case "best":
		return png.CompressionBest
	default:
		return png.CompressionDefault
	}
}
