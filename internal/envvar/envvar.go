package envvar

const (
	// YoloconvEnv is the environment variable used to determine the environment
	YoloconvEnv = "YOLOCONV_ENV"

	// YoloconvPython is the environment variable used to override the Python interpreter
	YoloconvPython = "YOLOCONV_PYTHON"

	// YoloconvLibrariesDir is the environment variable used to override the vendor libraries directory
	YoloconvLibrariesDir = "YOLOCONV_LIBRARIES_DIR"
)

// YoloconvDLLDirs lists the vendor library directories handed to the toolkit subprocess.
const YoloconvDLLDirs = "YOLOCONV_DLL_DIRS"
