package models

// NotificationAudioFilter restricts which audio-track drops raise alerts.
type NotificationAudioFilter string

const (
	NotifyAudioNone NotificationAudioFilter = "None"
	NotifyAudioSub  NotificationAudioFilter = "SUB"
	NotifyAudioDub  NotificationAudioFilter = "DUB"
)

// Settings contains per-user preferences. All values have working defaults;
// a zero Settings is not meaningful, use DefaultSettings.
type Settings struct {
	AutoPlay                  bool                    `json:"autoPlay"`      // start playback as soon as the watch view loads
	AutoNext                  bool                    `json:"autoNext"`      // advance to the next episode ordinal when one ends
	AutoSkipIntro             bool                    `json:"autoSkipIntro"`
	TitleLang                 TitleLang               `json:"titleLang"` // EN (romanized) or JP (native)
	PreferredAudio            AudioLang               `json:"preferredAudio"`
	EnableDub                 bool                    `json:"enableDub"`
	ShowCommentsAtHome        bool                    `json:"showCommentsAtHome"`
	PublicWatchList           bool                    `json:"publicWatchList"`
	NotificationIgnoreFolders []ListFolder            `json:"notificationIgnoreFolders"`
	NotificationIgnoreAudio   NotificationAudioFilter `json:"notificationIgnoreLanguage"`
}

// DefaultSettings returns the settings assigned to a freshly registered user.
func DefaultSettings() Settings {
	return Settings{
		AutoPlay:                  true,
		AutoNext:                  true,
		AutoSkipIntro:             false,
		TitleLang:                 TitleLangEN,
		PreferredAudio:            AudioHindi,
		EnableDub:                 true,
		ShowCommentsAtHome:        true,
		PublicWatchList:           true,
		NotificationIgnoreFolders: []ListFolder{},
		NotificationIgnoreAudio:   NotifyAudioNone,
	}
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	AutoPlay                  *bool                    `json:"autoPlay,omitempty"`
	AutoNext                  *bool                    `json:"autoNext,omitempty"`
	AutoSkipIntro             *bool                    `json:"autoSkipIntro,omitempty"`
	TitleLang                 *TitleLang               `json:"titleLang,omitempty"`
	PreferredAudio            *AudioLang               `json:"preferredAudio,omitempty"`
	EnableDub                 *bool                    `json:"enableDub,omitempty"`
	ShowCommentsAtHome        *bool                    `json:"showCommentsAtHome,omitempty"`
	PublicWatchList           *bool                    `json:"publicWatchList,omitempty"`
	NotificationIgnoreFolders *[]ListFolder            `json:"notificationIgnoreFolders,omitempty"`
	NotificationIgnoreAudio   *NotificationAudioFilter `json:"notificationIgnoreLanguage,omitempty"`
}

// Apply returns a copy of s with the patch's non-nil fields applied.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.AutoPlay != nil {
		s.AutoPlay = *p.AutoPlay
	}
	if p.AutoNext != nil {
		s.AutoNext = *p.AutoNext
	}
	if p.AutoSkipIntro != nil {
		s.AutoSkipIntro = *p.AutoSkipIntro
	}
	if p.TitleLang != nil {
		s.TitleLang = *p.TitleLang
	}
	if p.PreferredAudio != nil {
		s.PreferredAudio = *p.PreferredAudio
	}
	if p.EnableDub != nil {
		s.EnableDub = *p.EnableDub
	}
	if p.ShowCommentsAtHome != nil {
		s.ShowCommentsAtHome = *p.ShowCommentsAtHome
	}
	if p.PublicWatchList != nil {
		s.PublicWatchList = *p.PublicWatchList
	}
	if p.NotificationIgnoreFolders != nil {
		s.NotificationIgnoreFolders = *p.NotificationIgnoreFolders
	}
	if p.NotificationIgnoreAudio != nil {
		s.NotificationIgnoreAudio = *p.NotificationIgnoreAudio
	}
	return s
}
