// genobject prints Go struct definitions for gateway objects.  With
// no object names it lists every object the company exposes.
//
//	genobject -cfg service.json            list objects
//	genobject -cfg service.json VENDOR     print the VENDOR struct
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/gotamer/cases"

	"github.com/freightdesk/intacct"
)

var configFile = flag.String("cfg", "", "file name of a json file containing the service definition")

const usageMsg = "usage: -cfg [SERVICE_DEF_FILE] [OBJECTNAME....]"

// lookup DATATYPE values to Go types
var dataTypeMap = map[string]string{
	"TEXT":      "string",
	"TEXTAREA":  "string",
	"ENUM":      "string",
	"SEQUENCE":  "string",
	"INTEGER":   "intacct.Int",
	"BOOLEAN":   "intacct.Bool",
	"DATE":      "intacct.Date",
	"TIMESTAMP": "intacct.Datetime",
	"DECIMAL":   "intacct.Float64",
	"CURRENCY":  "intacct.Float64",
	"PERCENT":   "intacct.Float64",
}

var nr = strings.NewReplacer("_", " ", "(", "", ")", "", "%", "", "-", " ", "/", "", ".", "", "'", "", ",", "")

func main() {
	flag.Parse()
	if *configFile == "" {
		fmt.Fprintln(os.Stdout, usageMsg)
		os.Exit(1)
	}
	sv, err := getService(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stdout, "error parsing %s: %v\n", *configFile, err)
		os.Exit(1)
	}
	if flag.NArg() == 0 {
		err = listObjects(sv)
	} else {
		err = writeStructs(sv, flag.Args()...)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func getService(fn string) (*intacct.Service, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	return intacct.ServiceFromConfigJSON(bytes.NewReader(b))
}

func listObjects(sv *intacct.Service) error {
	resp, err := sv.Exec(context.Background(), intacct.ObjectList())
	if err != nil {
		return fmt.Errorf("exec error: %v", err)
	}
	var results []intacct.InspectName
	if err = resp.Decode(&results); err != nil {
		return fmt.Errorf("decode error: %v", err)
	}
	for _, result := range results {
		fmt.Printf("%s: %s\n", result.TypeName, result.Name)
	}
	return nil
}

func writeStructs(sv *intacct.Service, objNames ...string) error {
	cc := &intacct.ControlConfig{ReadOnly: true, DTDVersion: "3.0"}
	for _, objName := range objNames {
		resp, err := sv.ExecWithControl(context.Background(), cc, intacct.Lookup{ObjectName: objName})
		if err != nil {
			return fmt.Errorf("exec error: %v", err)
		}
		var ot intacct.ObjectType
		if err = resp.Decode(&ot); err != nil {
			return fmt.Errorf("decode error: %v", err)
		}
		writeStruct(os.Stdout, &ot)
	}
	return nil
}

func writeStruct(w *os.File, ot *intacct.ObjectType) {
	prev := make(map[string]bool)
	fmt.Fprintf(w, "// %s\ntype %s struct {\n", ot.Name, goName(ot.Name))
	for _, f := range ot.Fields {
		nm := goName(f.ID)
		if nm == "" || prev[nm] {
			continue
		}
		prev[nm] = true
		ty, ok := dataTypeMap[strings.ToUpper(f.DataType)]
		if !ok {
			ty = "string"
		}
		var comment string
		switch {
		case f.ReadOnly && f.Required:
			comment = " // Read Only Required"
		case f.ReadOnly:
			comment = " // Read Only"
		case f.Required:
			comment = " // Required"
		}
		fmt.Fprintf(w, "\t%s %s `xml:\"%s,omitempty\"`%s\n", nm, ty, f.ID, comment)
	}
	fmt.Fprint(w, "\tCustomFields []intacct.CustomField `xml:\",any\"`\n}\n\n")
}

// goName converts a field ID to an exported identifier.
func goName(id string) string {
	id = strings.TrimSpace(nr.Replace(id))
	if id == "" {
		return ""
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "F" + id
	}
	return cases.Camel(id)
}
