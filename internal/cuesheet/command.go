package cuesheet

// Command identifies a recognized cue sheet keyword. Anything else tokenizes
// to CommandUnrecognized and is handled per assembly phase.
type Command int

const (
	CommandUnrecognized Command = iota
	CommandRem
	CommandCatalog
	CommandCDTextFile
	CommandPerformer
	CommandSongWriter
	CommandTitle
	CommandFile
	CommandTrack
	CommandFlags
	CommandISRC
	CommandIndex
	CommandPregap
	CommandPostgap
)

var commandNames = [...]string{
	CommandUnrecognized: "",
	CommandRem:          "REM",
	CommandCatalog:      "CATALOG",
	CommandCDTextFile:   "CDTEXTFILE",
	CommandPerformer:    "PERFORMER",
	CommandSongWriter:   "SONGWRITER",
	CommandTitle:        "TITLE",
	CommandFile:         "FILE",
	CommandTrack:        "TRACK",
	CommandFlags:        "FLAGS",
	CommandISRC:         "ISRC",
	CommandIndex:        "INDEX",
	CommandPregap:       "PREGAP",
	CommandPostgap:      "POSTGAP",
}

// String returns the keyword as written in a cue sheet.
func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return ""
	}
	return commandNames[c]
}

func lookupCommand(keyword string) Command {
	switch keyword {
	case "REM":
		return CommandRem
	case "CATALOG":
		return CommandCatalog
	case "CDTEXTFILE":
		return CommandCDTextFile
	case "PERFORMER":
		return CommandPerformer
	case "SONGWRITER":
		return CommandSongWriter
	case "TITLE":
		return CommandTitle
	case "FILE":
		return CommandFile
	case "TRACK":
		return CommandTrack
	case "FLAGS":
		return CommandFlags
	case "ISRC":
		return CommandISRC
	case "INDEX":
		return CommandIndex
	case "PREGAP":
		return CommandPregap
	case "POSTGAP":
		return CommandPostgap
	default:
		return CommandUnrecognized
	}
}

// isRootValue reports whether the command sets a sheet-level string field.
func (c Command) isRootValue() bool {
	switch c {
	case CommandCatalog, CommandCDTextFile, CommandPerformer, CommandSongWriter, CommandTitle:
		return true
	}
	return false
}

// isTrackValue reports whether the command sets a track-level string field.
func (c Command) isTrackValue() bool {
	switch c {
	case CommandFlags, CommandISRC, CommandPerformer, CommandSongWriter, CommandTitle:
		return true
	}
	return false
}
