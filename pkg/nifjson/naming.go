package nifjson

import "strings"

// Ext is the two-part extension of model-interchange documents.
const Ext = ".nif.json"

// MirrorName derives the output name of an axis-mirrored file by appending
// suffix before the extension: "hut01.nif.json" -> "hut01_m.nif.json".
func MirrorName(filename, suffix string) string {
	return strings.TrimSuffix(filename, Ext) + suffix + Ext
}

// UVName derives the output name of a UV-mirrored file. A file that
// already carries the NIF mirror suffix gets the UV suffix spliced in
// front of it, so mirrored pairs keep sorting together:
// "hut01_m.nif.json" -> "hut01a_m.nif.json", otherwise the UV suffix is
// appended: "hut01.nif.json" -> "hut01a.nif.json".
func UVName(filename, uvSuffix, mirrorSuffix string) string {
	base := strings.TrimSuffix(filename, Ext)
	if mirrorSuffix != "" && strings.Contains(base, mirrorSuffix) {
		head, tail, _ := strings.Cut(base, mirrorSuffix)
		return head + uvSuffix + mirrorSuffix + tail + Ext
	}
	return base + uvSuffix + Ext
}
