package deps

import "fmt"

// Status reports the availability of one resolved tool.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ToolchainStatus reports availability for each tool in the chain. Only the
// multiplexer is mandatory: without ffprobe tracks are treated as unknown,
// without the transcoder audio is left untouched.
func ToolchainStatus(tc Toolchain) []Status {
	entries := []struct {
		tool        Tool
		description string
		optional    bool
	}{
		{tc.Mkvmerge, "Builds and rewrites Matroska containers", false},
		{tc.FFprobe, "Reads stream metadata", true},
		{tc.FFmpeg, "Re-encodes audio and video streams", true},
	}
	results := make([]Status, 0, len(entries))
	for _, entry := range entries {
		status := Status{
			Name:        entry.tool.Name,
			Command:     entry.tool.String(),
			Description: entry.description,
			Optional:    entry.optional,
			Available:   entry.tool.Available(),
		}
		if status.Available {
			status.Detail = "resolved via " + entry.tool.Source
		} else {
			status.Command = entry.tool.Configured
			status.Detail = fmt.Sprintf("binary %q not found", entry.tool.Configured)
		}
		results = append(results, status)
	}
	return results
}
