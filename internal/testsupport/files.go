package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// ManagedLibraries mirrors the assemblies the reorganizer copies from the game.
var ManagedLibraries = []string{
	"Assembly-CSharp-firstpass.dll",
	"System.Memory.dll",
	"System.Buffers.dll",
	"Unity.XR.Oculus.dll",
	"Unity.XR.OpenVR.dll",
	"System.Runtime.CompilerServices.Unsafe.dll",
}

// ManifestJSON is a trimmed Unity package manifest as the decompiler writes it.
const ManifestJSON = `{
  "dependencies": {
    "com.unity.textmeshpro": "2.1.1",
    "com.unity.ugui": "1.0.0",
    "com.unity.modules.ai": "1.0.0"
  },
  "scopedRegistries": []
}
`

// BuggyScript contains the generated get_transform property the source
// patcher strips.
const BuggyScript = "namespace UnityEngine.UI\n{\n\tpublic class Graphic\n\t{\n" +
	"\t\t[SpecialName]\n" +
	"\t\tTransform ICanvasElement.get_transform()\n" +
	"\t\t{\n\t\t\treturn base.transform;\n\t\t}\n" +
	"\t\tpublic void Rebuild() { }\n\t}\n}\n"

// WriteTree creates every file in files (slash separated paths relative to
// root) with the given contents. A trailing slash creates an empty directory.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()

	for rel, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if rel != "" && rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

// SeedGameInstall writes the managed assemblies into gameDir/VTOLVR_Data/Managed.
func SeedGameInstall(t testing.TB, gameDir string) {
	t.Helper()

	files := make(map[string]string, len(ManagedLibraries)+1)
	for _, name := range ManagedLibraries {
		files["VTOLVR_Data/Managed/"+name] = "game:" + name
	}
	files["VTOLVR_Data/Managed/Assembly-CSharp.dll"] = "game:Assembly-CSharp.dll"
	WriteTree(t, gameDir, files)
}

// SeedExport writes a synthetic decompiler output tree into outputDir.
func SeedExport(t testing.TB, outputDir string) {
	t.Helper()

	WriteTree(t, outputDir, map[string]string{
		"AuxiliaryFiles/GameAssemblies/Assembly-CSharp.dll":                        "aux",
		"ExportedProject/AuxiliaryFiles/log.txt":                                   "aux",
		"ExportedProject/Assets/Scenes/Maps/Akutan/Akutan.unity":                   "scene",
		"ExportedProject/Assets/Scenes/Maps/Custom/Custom.unity":                   "scene",
		"ExportedProject/Assets/Scenes/Other1/Menu.unity":                          "scene",
		"ExportedProject/Assets/Scenes/Other2/Hangar.unity":                        "scene",
		"ExportedProject/Assets/Scenes/Readme.txt":                                 "loose",
		"ExportedProject/Assets/Plugins/Unity.Postprocessing.Runtime.dll":          "unity",
		"ExportedProject/Assets/Plugins/Unity.TextMeshPro.dll":                     "unity",
		"ExportedProject/Assets/Plugins/Assembly-CSharp-firstpass/Steam.cs":        "firstpass",
		"ExportedProject/Assets/Plugins/SteamVR.dll":                               "steamvr",
		"ExportedProject/Assets/Plugins/SteamVR_Actions.dll":                       "steamvr",
		"ExportedProject/Assets/Plugins/Newtonsoft.Json.dll":                       "keep",
		"ExportedProject/Assets/Plugins/Unity.XR.OpenVR.dll":                       "exported",
		"ExportedProject/Assets/Scripts/Assembly-CSharp/UnityEngine/UI/Graphic.cs": BuggyScript,
		"ExportedProject/Assets/Scripts/Assembly-CSharp/UnityEngine/UI/Clean.cs":   "public class Clean { }\n",
		"ExportedProject/Packages/manifest.json":                                   ManifestJSON,
		"ExportedProject/ProjectSettings/ProjectVersion.txt":                       "m_EditorVersion: 2020.3.30f1\n",
	})
}
