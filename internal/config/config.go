package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Keymap struct {
	Normal map[string]string `toml:"normal"`
	Edit   map[string]string `toml:"edit"`
}

type EditorOptions struct {
	Columns   int  `toml:"columns"`
	HideASCII bool `toml:"hide-ascii"`
	DimZeros  bool `toml:"dim-zeros"`
}

type PreviewOptions struct {
	Width      int    `toml:"width"`
	Endianness string `toml:"endianness"`
	Signed     bool   `toml:"signed"`
}

// Region is an extra named address range layered over the whole-file range,
// bounds given as hex strings ("0xFF00" or "FF00").
type Region struct {
	Name  string `toml:"name"`
	Start string `toml:"start"`
	End   string `toml:"end"`
}

type Theme struct {
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	AddressForeground     string `toml:"address-foreground"`
	ZeroForeground        string `toml:"zero-foreground"`
	ASCIIForeground       string `toml:"ascii-foreground"`
	SelectionForeground   string `toml:"selection-foreground"`
	SelectionBackground   string `toml:"selection-background"`
	EditForeground        string `toml:"edit-foreground"`
	EditBackground        string `toml:"edit-background"`
	EditInvalidBackground string `toml:"edit-invalid-background"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	PromptForeground      string `toml:"prompt-foreground"`
	PromptBackground      string `toml:"prompt-background"`
}

type Config struct {
	Editor  EditorOptions  `toml:"editor"`
	Preview PreviewOptions `toml:"preview"`
	Theme   Theme          `toml:"theme"`
	Keymap  Keymap         `toml:"keymap"`
	Regions []Region       `toml:"regions"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Columns:   16,
			HideASCII: false,
			DimZeros:  false,
		},
		Preview: PreviewOptions{
			Width:      4,
			Endianness: "little",
			Signed:     false,
		},
		Theme: Theme{
			Foreground:            "#B3B1AD",
			Background:            "#0A0E14",
			AddressForeground:     "#3E4B59",
			ZeroForeground:        "#3E4B59",
			ASCIIForeground:       "#5C6773",
			SelectionForeground:   "#B3B1AD",
			SelectionBackground:   "#27425A",
			EditForeground:        "#0A0E14",
			EditBackground:        "#E6B450",
			EditInvalidBackground: "#F07178",
			StatuslineForeground:  "#B3B1AD",
			StatuslineBackground:  "#0F1419",
			PromptForeground:      "#B3B1AD",
			PromptBackground:      "#0F1419",
		},
		Keymap: Keymap{
			Normal: map[string]string{
				"up":          "scroll_up",
				"down":        "scroll_down",
				"pgup":        "page_up",
				"pgdn":        "page_down",
				"home":        "region_start",
				"end":         "region_end",
				"left":        "select_left",
				"right":       "select_right",
				"shift+left":  "extend_left",
				"shift+right": "extend_right",
				"g":           "goto_prompt",
				"tab":         "region_next",
				"shift+tab":   "region_prev",
				"enter":       "edit_cell",
				"a":           "toggle_ascii",
				"w":           "preview_width",
				"e":           "preview_endian",
				"s":           "preview_signed",
				"esc":         "clear_selection",
				"ctrl+s":      "save",
				"q":           "quit",
				"ctrl+c":      "quit",
			},
			Edit: map[string]string{
				"enter": "commit",
				"tab":   "commit_advance",
				"esc":   "cancel",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.Columns > 0 {
		cfg.Editor.Columns = userCfg.Editor.Columns
	}
	if userCfg.Editor.HideASCII {
		cfg.Editor.HideASCII = true
	}
	if userCfg.Editor.DimZeros {
		cfg.Editor.DimZeros = true
	}
	if userCfg.Preview.Width > 0 {
		cfg.Preview.Width = userCfg.Preview.Width
	}
	if userCfg.Preview.Endianness != "" {
		cfg.Preview.Endianness = userCfg.Preview.Endianness
	}
	if userCfg.Preview.Signed {
		cfg.Preview.Signed = true
	}
	if userCfg.Theme.Foreground != "" {
		cfg.Theme.Foreground = userCfg.Theme.Foreground
	}
	if userCfg.Theme.Background != "" {
		cfg.Theme.Background = userCfg.Theme.Background
	}
	if userCfg.Theme.AddressForeground != "" {
		cfg.Theme.AddressForeground = userCfg.Theme.AddressForeground
	}
	if userCfg.Theme.ZeroForeground != "" {
		cfg.Theme.ZeroForeground = userCfg.Theme.ZeroForeground
	}
	if userCfg.Theme.ASCIIForeground != "" {
		cfg.Theme.ASCIIForeground = userCfg.Theme.ASCIIForeground
	}
	if userCfg.Theme.SelectionForeground != "" {
		cfg.Theme.SelectionForeground = userCfg.Theme.SelectionForeground
	}
	if userCfg.Theme.SelectionBackground != "" {
		cfg.Theme.SelectionBackground = userCfg.Theme.SelectionBackground
	}
	if userCfg.Theme.EditForeground != "" {
		cfg.Theme.EditForeground = userCfg.Theme.EditForeground
	}
	if userCfg.Theme.EditBackground != "" {
		cfg.Theme.EditBackground = userCfg.Theme.EditBackground
	}
	if userCfg.Theme.EditInvalidBackground != "" {
		cfg.Theme.EditInvalidBackground = userCfg.Theme.EditInvalidBackground
	}
	if userCfg.Theme.StatuslineForeground != "" {
		cfg.Theme.StatuslineForeground = userCfg.Theme.StatuslineForeground
	}
	if userCfg.Theme.StatuslineBackground != "" {
		cfg.Theme.StatuslineBackground = userCfg.Theme.StatuslineBackground
	}
	if userCfg.Theme.PromptForeground != "" {
		cfg.Theme.PromptForeground = userCfg.Theme.PromptForeground
	}
	if userCfg.Theme.PromptBackground != "" {
		cfg.Theme.PromptBackground = userCfg.Theme.PromptBackground
	}
	if userCfg.Keymap.Normal != nil {
		for k, v := range userCfg.Keymap.Normal {
			cfg.Keymap.Normal[k] = v
		}
	}
	if userCfg.Keymap.Edit != nil {
		for k, v := range userCfg.Keymap.Edit {
			cfg.Keymap.Edit[k] = v
		}
	}
	if len(userCfg.Regions) > 0 {
		cfg.Regions = userCfg.Regions
	}

	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QHEX_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qhex"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qhex"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
