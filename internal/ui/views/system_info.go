package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath string
	Driver     string
	DBPath     string
	DBExists   bool // true = Found, false = Not Found
	LogFile    string
	LoggedInAs string
	AppDataDir string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	user := data.LoggedInAs
	if user == "" {
		user = pterm.Gray("(not logged in)")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Driver", data.Driver},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Log File", data.LogFile},
		{"Logged In As", user},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
