package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"ad-metrics-service/internal/devices/core/domain"
)

type bucketJSON struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Requests    int64 `json:"requests"`
}

type reportJSON struct {
	Devices struct {
		Android bucketJSON `json:"android"`
		IOS     bucketJSON `json:"ios"`
		Desktop bucketJSON `json:"desktop"`
		Tablet  bucketJSON `json:"tablet"`
	} `json:"devices"`
	Locations map[string]any `json:"locations"`
}

func writeReport(w io.Writer, r *domain.DeviceReport, asJSON bool) error {
	if asJSON {
		var out reportJSON
		out.Devices.Android = bucketJSON(r.Devices.Bucket(domain.Android))
		out.Devices.IOS = bucketJSON(r.Devices.Bucket(domain.IOS))
		out.Devices.Desktop = bucketJSON(r.Devices.Bucket(domain.Desktop))
		out.Devices.Tablet = bucketJSON(r.Devices.Bucket(domain.Tablet))
		out.Locations = map[string]any{}

		raw, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEVICE\tIMPRESSIONS\tCLICKS\tREQUESTS")
	for _, c := range domain.Categories {
		b := r.Devices.Bucket(c)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", c, b.Impressions, b.Clicks, b.Requests)
	}
	if n := r.Devices.Unclassified; n > 0 {
		fmt.Fprintf(tw, "(%d rows with unknown device skipped)\n", n)
	}
	return tw.Flush()
}
