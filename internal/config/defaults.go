package config

const (
	defaultQuarantineDir     = "~/Desktop/duplicated"
	defaultStateDir          = "~/.local/share/doccleaner"
	defaultRunFolderPrefix   = "DocCleaner_Run_"
	defaultFallbackTopic     = "GENERIC"
	defaultFallbackFolder    = "OTROS"
	defaultSampleLimit       = 2000
	defaultPDFMaxPages       = 3
	defaultDOCXMaxParagraphs = 20
	defaultXLSXMaxRows       = 20
	defaultPPTXMaxSlides     = 6
	defaultDateSource        = DateSourceModified
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultHistoryEnabled    = true
)

// Reference date sources.
const (
	DateSourceModified = "modified"
	DateSourceCreated  = "created"
)

func defaultExtensions() []string {
	return []string{".pdf", ".docx", ".pptx", ".xlsx"}
}

func defaultExcludedPrefixes() []string {
	return []string{".", "__"}
}

func defaultTopics() []Topic {
	return []Topic{
		{Key: "FORMATO", Folder: "FORMATOS", Keywords: []string{"formato", "template", "plantilla", "formulario"}},
		{Key: "PROCEDIMIENTO", Folder: "PROCEDIMIENTOS", Keywords: []string{"procedimiento", "procedure", "instructivo", "manual", "guia"}},
		{Key: "ACTA", Folder: "ACTAS", Keywords: []string{"acta", "minutes", "minuta", "reunion", "meeting"}},
		{Key: "PROCESO", Folder: "PROCESOS", Keywords: []string{"proceso", "process", "diagrama", "flujo"}},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			QuarantineDir:   defaultQuarantineDir,
			StateDir:        defaultStateDir,
			RunFolderPrefix: defaultRunFolderPrefix,
		},
		Scan: Scan{
			Extensions:       defaultExtensions(),
			ExcludedPrefixes: defaultExcludedPrefixes(),
		},
		Classification: Classification{
			FallbackTopic:  defaultFallbackTopic,
			FallbackFolder: defaultFallbackFolder,
		},
		Topics: defaultTopics(),
		Extraction: Extraction{
			SampleLimit:       defaultSampleLimit,
			PDFMaxPages:       defaultPDFMaxPages,
			DOCXMaxParagraphs: defaultDOCXMaxParagraphs,
			XLSXMaxRows:       defaultXLSXMaxRows,
			PPTXMaxSlides:     defaultPPTXMaxSlides,
		},
		Naming: Naming{
			DateSource: defaultDateSource,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
	}
}
