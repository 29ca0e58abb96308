package ultralytics

import "github.com/ekisa-team/yoloconv/internal/envvar"

// resultPrefix marks the line a helper script prints to report its output path.
const resultPrefix = "__YOLOCONV_RESULT__="

// Every script reads its parameters from sys.argv so no value is ever
// interpolated into Python source.

// dllPrelude registers the vendor library directories with the Windows DLL
// loader, which ignores PATH for extension modules. Failures are ignored.
const dllPrelude = `import os
for _d in os.environ.get("` + envvar.YoloconvDLLDirs + `", "").split(os.pathsep):
    if _d and hasattr(os, "add_dll_directory"):
        try:
            os.add_dll_directory(_d)
        except OSError:
            pass
`

// probeScript prints the version of the module named by argv[1].
const probeScript = dllPrelude + `import importlib, sys
m = importlib.import_module(sys.argv[1])
print(getattr(m, "__version__", "unknown"))
`

// entryPointScript exits non-zero unless argv[1] exposes attribute argv[2].
const entryPointScript = dllPrelude + `import importlib, sys
getattr(importlib.import_module(sys.argv[1]), sys.argv[2])
`

// exportScript: argv = path, format, device, half ("1"/"0").
const exportScript = dllPrelude + `import sys
from ultralytics import YOLO
path, fmt, device, half = sys.argv[1], sys.argv[2], sys.argv[3], sys.argv[4] == "1"
model = YOLO(path)
out = model.export(
    format=fmt,
    simplify=True,
    dynamic=False,
    device=int(device) if device.isdigit() else device,
    half=half,
)
print("` + resultPrefix + `" + (str(out) if out else ""), flush=True)
`

// onnxToEngineScript: argv = module, onnx path, engine path, half ("1"/"0").
const onnxToEngineScript = dllPrelude + `import importlib, sys
onnx2engine = getattr(importlib.import_module(sys.argv[1]), "onnx2engine")
onnx2engine(
    onnx_file=sys.argv[2],
    engine_file=sys.argv[3],
    half=sys.argv[4] == "1",
    dynamic=False,
)
print("` + resultPrefix + `" + sys.argv[3], flush=True)
`

func boolArg(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
