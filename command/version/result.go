package version

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/0xPolygon/lottery-harness/command/helper"
)

type VersionResult struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Branch    string   `json:"branch"`
	BuildTime string   `json:"buildTime"`
	GoVersion string   `json:"goVersion"`
	Artifacts []string `json:"artifacts"`
}

func (r *VersionResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("\n[LOTTERY HARNESS VERSION]\n")
	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Release version|%s", r.Version),
		fmt.Sprintf("Git branch|%s", r.Branch),
		fmt.Sprintf("Commit hash|%s", r.Commit),
		fmt.Sprintf("Build time|%s", r.BuildTime),
		fmt.Sprintf("Go version|%s", r.GoVersion),
		fmt.Sprintf("Bundled artifacts|%s", strings.Join(r.Artifacts, ", ")),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
