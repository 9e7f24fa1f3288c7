// Copyright 2025 ldx Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ldconfig

// Typed records mirroring the JSON shapes LDPlayer writes. Field names
// (including the vendor's typos: realHeigh, isForstStart, micphoneName)
// must match the files byte for byte.

// KeyConfig is a hotkey binding: a modifier bitfield plus a virtual key
// code.
type KeyConfig struct {
	Modifiers int `json:"modifiers"`
	Key       int `json:"key"`
}

// HotkeySettings holds the per-instance hotkey bindings.
type HotkeySettings struct {
	BackKey            KeyConfig `json:"backKey"`
	HomeKey            KeyConfig `json:"homeKey"`
	AppSwitchKey       KeyConfig `json:"appSwitchKey"`
	MenuKey            KeyConfig `json:"menuKey"`
	ZoomInKey          KeyConfig `json:"zoomInKey"`
	ZoomOutKey         KeyConfig `json:"zoomOutKey"`
	BossKey            KeyConfig `json:"bossKey"`
	ShakeKey           KeyConfig `json:"shakeKey"`
	OperationRecordKey KeyConfig `json:"operationRecordKey"`
	FullScreenKey      KeyConfig `json:"fullScreenKey"`
	ShowMappingKey     KeyConfig `json:"showMappingKey"`
	VideoRecordKey     KeyConfig `json:"videoRecordKey"`
	MappingRecordKey   KeyConfig `json:"mappingRecordKey"`
	KeyboardModelKey   KeyConfig `json:"keyboardModelKey"`
}

// Resolution is a display resolution in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AdvancedSettings holds CPU, memory, and display allocation.
type AdvancedSettings struct {
	Resolution    Resolution `json:"resolution"`
	ResolutionDPI int        `json:"resolutionDpi"`
	CPUCount      int        `json:"cpuCount"`
	MemorySize    int        `json:"memorySize"`
	MicphoneName  *string    `json:"micphoneName,omitempty"`
	SpeakerName   *string    `json:"speakerName,omitempty"`
}

// BasicSettings holds window geometry and per-instance toggles.
type BasicSettings struct {
	Left                    int  `json:"left"`
	Top                     int  `json:"top"`
	Width                   int  `json:"width"`
	Height                  int  `json:"height"`
	RealHeigh               int  `json:"realHeigh"`
	RealWidth               int  `json:"realWidth"`
	IsForstStart            bool `json:"isForstStart"`
	MulFsAddSize            int  `json:"mulFsAddSize"`
	MulFsAutoSize           int  `json:"mulFsAutoSize"`
	VerticalSync            bool `json:"verticalSync"`
	FsAutoSize              int  `json:"fsAutoSize"`
	NoiceHypeVOpen          bool `json:"noiceHypeVOpen"`
	AutoRun                 bool `json:"autoRun"`
	RootMode                bool `json:"rootMode"`
	HeightFrameRate         bool `json:"heightFrameRate"`
	AdbDebug                int  `json:"adbDebug"`
	AutoRotate              bool `json:"autoRotate"`
	IsForceLandscape        bool `json:"isForceLandscape"`
	StandaloneSysVmdk       bool `json:"standaloneSysVmdk"`
	LockWindow              bool `json:"lockWindow"`
	DisableMouseFastOpt     bool `json:"disableMouseFastOpt"`
	CjztdisableMouseFastOpt int  `json:"cjztdisableMouseFastOpt_new"`
	HDRQuality              int  `json:"HDRQuality"`
	QjcjdisableMouseFast    int  `json:"qjcjdisableMouseFast"`
	FPS                     int  `json:"fps"`
	ASTC                    bool `json:"astc"`
	RightToolBar            bool `json:"rightToolBar"`
}

// NetworkSettings holds the instance's virtual network configuration.
type NetworkSettings struct {
	NetworkEnable     bool    `json:"networkEnable"`
	NetworkSwitching  bool    `json:"networkSwitching"`
	NetworkStatic     bool    `json:"networkStatic"`
	NetworkAddress    string  `json:"networkAddress"`
	NetworkGateway    string  `json:"networkGateway"`
	NetworkSubnetMask string  `json:"networkSubnetMask"`
	NetworkDNS1       string  `json:"networkDNS1"`
	NetworkDNS2       string  `json:"networkDNS2"`
	NetworkInterface  *string `json:"networkInterface,omitempty"`
}

// PropertySettings holds the spoofed device identity.
type PropertySettings struct {
	PhoneIMEI         string  `json:"phoneIMEI"`
	PhoneIMSI         string  `json:"phoneIMSI"`
	PhoneSimSerial    string  `json:"phoneSimSerial"`
	PhoneAndroidID    string  `json:"phoneAndroidId"`
	PhoneModel        string  `json:"phoneModel"`
	PhoneManufacturer string  `json:"phoneManufacturer"`
	MacAddress        string  `json:"macAddress"`
	PhoneNumber       *string `json:"phoneNumber,omitempty"`
}

// StatusSettings holds shared-folder paths and the display name.
type StatusSettings struct {
	SharedApplications string `json:"sharedApplications"`
	SharedPictures     string `json:"sharedPictures"`
	SharedMisc         string `json:"sharedMisc"`
	CloseOption        int    `json:"closeOption"`
	PlayerName         string `json:"playerName"`
}

// InstanceConfig is one leidian<N>.config file.
type InstanceConfig struct {
	PropertySettings PropertySettings  `json:"propertySettings"`
	StatusSettings   StatusSettings    `json:"statusSettings"`
	BasicSettings    BasicSettings     `json:"basicSettings"`
	NetworkSettings  NetworkSettings   `json:"networkSettings"`
	AdvancedSettings *AdvancedSettings `json:"advancedSettings,omitempty"`
	HotkeySettings   *HotkeySettings   `json:"hotkeySettings,omitempty"`

	// ID is derived from the filename, not stored in the file.
	ID int `json:"-"`
}

// WindowsPosition is an x/y pair in the multi-instance window grid.
type WindowsPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GlobalBasicSettings is the basicSettings group of leidians.config.
type GlobalBasicSettings struct {
	LastIP *string `json:"lastIp,omitempty"`
}

// GlobalConfig is the leidians.config file: global preferences, window
// layout, and multi-instance batch behavior.
type GlobalConfig struct {
	NextCheckupdateTime  int                  `json:"nextCheckupdateTime"`
	HasPluginLast        bool                 `json:"hasPluginLast"`
	Strp                 string               `json:"strp"`
	LastZoneArea         string               `json:"lastZoneArea"`
	LastZoneName         string               `json:"lastZoneName"`
	VIPMode              bool                 `json:"vipMode"`
	IsBaseboard          bool                 `json:"isBaseboard"`
	BasicSettings        *GlobalBasicSettings `json:"basicSettings,omitempty"`
	NoiceUserRed         bool                 `json:"noiceUserRed"`
	IsFirstInstallApk    bool                 `json:"isFirstInstallApk"`
	CloneFromSmallDisk   bool                 `json:"cloneFromSmallDisk"`
	LanguageID           string               `json:"languageId"`
	MulTab               bool                 `json:"mulTab"`
	ExitFullscreenEsc    bool                 `json:"exitFullscreenEsc"`
	DisableMouseRightOpt bool                 `json:"disableMouseRightOpt"`
	NextUpdateTime       int                  `json:"nextUpdateTime"`
	IgnoreVersion        string               `json:"ignoreVersion"`
	FramesPerSecond      int                  `json:"framesPerSecond"`
	ReduceAudio          bool                 `json:"reduceAudio"`
	DisplayMode          bool                 `json:"displayMode"`
	VmdkFastMode         bool                 `json:"vmdkFastMode"`
	WindowsAlignType     int                  `json:"windowsAlignType"`
	WindowsRowCount      int                  `json:"windowsRowCount"`
	WindowsAutoSize      bool                 `json:"windowsAutoSize"`
	Sortwndnotoutscreen  bool                 `json:"sortwndnotoutscreen"`
	MoreScreenSortInSame bool                 `json:"moreScreenSortInSame"`
	WindowsOrigin        *WindowsPosition     `json:"windowsOrigin,omitempty"`
	WindowsOffset        *WindowsPosition     `json:"windowsOffset,omitempty"`
	BatchStartInterval   int                  `json:"batchStartInterval"`
	BatchNewCount        int                  `json:"batchNewCount"`
	BatchCloneCount      int                  `json:"batchCloneCount"`
	WindowsRecordPos     bool                 `json:"windowsRecordPos"`
	MultiPlayerSort      int                  `json:"multiPlayerSort"`
	IsSSD                bool                 `json:"isSSD"`
	FromInstall          bool                 `json:"fromInstall"`
	ProductLanguageID    string               `json:"productLanguageId"`
	ChannelOpenID        string               `json:"channelOpenId"`
	ChannelLastOpenID    string               `json:"channelLastOpenId"`
	OperaRecordFirstDo   bool                 `json:"operaRecordFirstDo"`
	RemoteEntranceVer    int                  `json:"remoteEntranceVersion"`
}

// DefaultGlobalConfig returns a GlobalConfig with the emulator's
// defaults for the fields that are not zero-valued.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		FramesPerSecond:    60,
		BatchStartInterval: 5,
	}
}

// Profile is a settings metadata profile (.smp): user preferences and
// UI state for the keyboard/joystick mapping features.
type Profile struct {
	ReduceInertia         bool           `json:"reduceInertia"`
	KeyboardShowGreet     bool           `json:"keyboardShowGreet"`
	JoystickShowGreet     bool           `json:"joystickShowGreet"`
	KeyboardFirstGreet    bool           `json:"keyboardFirstGreet"`
	JoystickFirstGreet    bool           `json:"joystickFirstGreet"`
	KeyboardShowHints     bool           `json:"keyboardShowHints"`
	JoystickShowHints     bool           `json:"joystickShowHints"`
	KeyboardIgnoreVersion int            `json:"keyboardIgnoreVersion"`
	JoystickIgnoreVersion int            `json:"joystickIgnoreVersion"`
	NoticeTimes           int            `json:"noticeTimes"`
	NoticeHash            int            `json:"noticeHash"`
	ResolutionRelatives   map[string]any `json:"resolutionRelatives,omitempty"`
}
