package config

const (
	defaultConfigPath       = "~/.config/mkvsmith/config.toml"
	projectConfigName       = "mkvsmith.toml"
	configEnvVar            = "MKVSMITH_CONFIG"
	defaultFFprobeBinary    = "ffprobe"
	defaultMkvmergeBinary   = "mkvmerge"
	defaultFFmpegBinary     = "ffmpeg"
	defaultFlatpakFallback  = true
	defaultTargetAudioCodec = "ac3"
	defaultAudioBitrate     = "192k"
	defaultOutputPrefix     = "_"
	defaultConvertVideo     = "copy"
	defaultConvertCRF       = 23
	defaultConvertAudio     = "ac3"
	defaultAV1Encoder       = "ffmpeg"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// ContainerExtension identifies existing Matroska containers during discovery.
const ContainerExtension = ".mkv"

func defaultPreferredLanguages() []string {
	return []string{"slv", "hrv", "srp", "bos"}
}

func defaultVideoExtensions() []string {
	return []string{".mp4", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpeg", ".mpg"}
}

func defaultSubtitleSuffixes() []string {
	return []string{".srt", ".sl.srt", ".slv.srt", "_sl.srt", "_slv.srt"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFprobe:         defaultFFprobeBinary,
			Mkvmerge:        defaultMkvmergeBinary,
			FFmpeg:          defaultFFmpegBinary,
			FlatpakFallback: defaultFlatpakFallback,
		},
		Batch: Batch{
			PreferredLanguages: defaultPreferredLanguages(),
			TargetAudioCodec:   defaultTargetAudioCodec,
			AudioBitrate:       defaultAudioBitrate,
			VideoExtensions:    defaultVideoExtensions(),
			SubtitleSuffixes:   defaultSubtitleSuffixes(),
		},
		Edit: Edit{
			OutputPrefix: defaultOutputPrefix,
		},
		Convert: Convert{
			VideoCodec:   defaultConvertVideo,
			CRF:          defaultConvertCRF,
			AudioCodec:   defaultConvertAudio,
			AudioBitrate: defaultAudioBitrate,
			AV1Encoder:   defaultAV1Encoder,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
