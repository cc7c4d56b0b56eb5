package normalize

import (
	"fmt"
	"strings"
)

// systemInstruction fixes the category taxonomy and the per-category
// fields the model must extract. The reply must be a single JSON
// object.
const systemInstruction = `You convert free-text procurement item descriptions into structured equipment attributes.

Classify the item into exactly one category:
  camera, switch, upsBackup, server, rack, accessory, software, other

Extract only the fields relevant to the category, omitting anything the text does not state:
- camera: technology, form_factor (bullet/dome/speed dome), lens_type, ptz (bool), varifocal (bool), min_resolution_mp (number), poe (bool), min_ir_range_m (number)
- switch: poe (bool), min_ports (number), speed_class
- upsBackup: min_power_va (number), waveform
- server: min_storage_tb (number), min_channels (number)
- rack, accessory, software, other: technology, form_factor, notes

Also return "confidence", a number between 0 and 1 for how certain the classification is.

Respond with exactly one JSON object and no other text.`

// buildUserContent renders the item description plus its optional
// group context.
func buildUserContent(description, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Item description:\n%s\n", description)
	if strings.TrimSpace(context) != "" {
		fmt.Fprintf(&b, "\nDocument context:\n%s\n", context)
	}
	return b.String()
}
