package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCLI(t *testing.T) {
	convey.Convey("Given price files on disk", t, func() {
		lbin := writeFile(t, "lbin.json", `{"HYPERION": 1000, "ENCHANTMENT_SHARPNESS_6": 50, "ENCHANTMENT_CRITICAL_6": 40}`)
		bazaar := writeFile(t, "bazaar.json", `{"products": {"WITHER_BLOOD": {"quick_status": {"buyPrice": 200, "sellPrice": 150}}}}`)
		var out bytes.Buffer

		convey.Convey("When valuing one item from stdin", func() {
			in := strings.NewReader(`{"id": "HYPERION", "attributes": {"modifier": "withered"}}`)
			err := newApp(in, &out).Run([]string{"networth-cli", "value", "--prices", lbin, "--prices", bazaar})

			convey.Convey("Then the valuation is printed as JSON", func() {
				convey.So(err, convey.ShouldBeNil)
				var v map[string]any
				convey.So(json.Unmarshal(out.Bytes(), &v), convey.ShouldBeNil)
				convey.So(v["skyblockId"], convey.ShouldEqual, "HYPERION")
				convey.So(v["price"], convey.ShouldEqual, 1200)
			})
		})

		convey.Convey("When valuing a list from a file", func() {
			items := writeFile(t, "items.json", `[{"id": "HYPERION"}, {"id": "WITHER_BLOOD", "count": 3}]`)
			err := newApp(strings.NewReader(""), &out).Run([]string{"networth-cli", "value", "-p", lbin, "-p", bazaar, "--item", items})

			convey.Convey("Then a batch result is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				var res map[string]any
				convey.So(json.Unmarshal(out.Bytes(), &res), convey.ShouldBeNil)
				convey.So(res["results"], convey.ShouldHaveLength, 2)
				convey.So(res["totalPrice"], convey.ShouldEqual, 1600)
			})
		})

		convey.Convey("When the item is malformed", func() {
			err := newApp(strings.NewReader(`{"id": `), &out).Run([]string{"networth-cli", "value", "-p", lbin})
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When listing keys", func() {
			err := newApp(strings.NewReader(""), &out).Run([]string{"networth-cli", "keys", "-p", lbin, "--prefix", "enchantment_"})

			convey.Convey("Then matching keys are printed sorted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldEqual, "ENCHANTMENT_CRITICAL_6\nENCHANTMENT_SHARPNESS_6\n")
			})
		})

		convey.Convey("When no price file is given", func() {
			err := newApp(strings.NewReader(""), &out).Run([]string{"networth-cli", "keys", "--prefix", "A"})
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestIsList(t *testing.T) {
	convey.Convey("Given item documents", t, func() {
		convey.So(isList([]byte(`[{"id": "A"}]`)), convey.ShouldBeTrue)
		convey.So(isList([]byte(`{"items": []}`)), convey.ShouldBeTrue)
		convey.So(isList([]byte(`{"id": "A"}`)), convey.ShouldBeFalse)
	})
}
