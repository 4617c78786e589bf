package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/aws-cost-report-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
     ___        ______     ____          _     ____                       _
    / \ \      / / ___|   / ___|___  ___| |_  |  _ \ ___ _ __   ___  _ __| |_
   / _ \ \ /\ / /\___ \  | |   / _ \/ __| __| | |_) / _ \ '_ \ / _ \| '__| __|
  / ___ \ V  V /  ___) | | |__| (_) \__ \ |_  |  _ <  __/ |_) | (_) | |  | |_
 /_/   \_\_/\_/  |____/   \____\___/|___/\__| |_| \_\___| .__/ \___/|_|   \__|
                                                        |_|
`
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	ver := version.FormatVersion()
	if versionStr != "" && versionStr != version.Version {
		ver = versionStr
	}
	fmt.Println(blue(fmt.Sprintf("AWS Cost Report CLI (v%s)", ver)))
}
