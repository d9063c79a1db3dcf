package repwizard

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	reptext "github.com/radiochild/utils/text"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

type OutputType int

const (
	OTText OutputType = iota
	OTJSON
	OTMessagePack
)

func ParseOutputType(s string) (OutputType, error) {
	switch s {
	case "text", "":
		return OTText, nil
	case "json":
		return OTJSON, nil
	case "msgpack":
		return OTMessagePack, nil
	}
	return 0, errors.Errorf("unknown output type %q", s)
}

// Row tags in SpecWriter output.
const (
	RowHeader       = "HDR"
	RowField        = "FLD"
	RowFilter       = "FLT"
	RowSort         = "SRT"
	RowPresentation = "OPT"
)

// SpecWriter streams a report spec as tagged rows: one per field, filter
// condition, sort entry, plus a header and the presentation options.
type SpecWriter struct {
	logger     *zap.SugaredLogger
	outwriter  io.Writer
	outputType OutputType
	wantDashes bool
}

type SpecRow struct {
	RowType string   `json:"typ" msgpack:"typ"`
	Index   int      `json:"idx" msgpack:"idx"`
	Name    string   `json:"nam" msgpack:"nam"`
	Values  []string `json:"val" msgpack:"val"`
}

func NewSpecWriter(pLogger *zap.SugaredLogger, wx io.Writer, outputType OutputType) *SpecWriter {
	sW := new(SpecWriter)
	sW.logger = pLogger
	sW.outputType = outputType
	sW.outwriter = wx
	if sW.outputType == OTText {
		// minwidth, tabwidth, padding, padChar
		sW.outwriter = tabwriter.NewWriter(wx, 8, 8, 2, ' ', 0)
		sW.wantDashes = true
	}
	return sW
}

func (sW *SpecWriter) EmitRow(rowType string, index int, name string, values []string) error {
	rOut := SpecRow{
		RowType: rowType,
		Index:   index,
		Name:    name,
		Values:  values,
	}
	switch sW.outputType {
	case OTText:
		_, err := fmt.Fprintf(sW.outwriter, "%s-%d\t%s\t%s\t\n", rOut.RowType, rOut.Index, rOut.Name, reptext.TabString(rOut.Values))
		return err
	case OTJSON:
		data, err := json.Marshal(rOut)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal %s row", rowType)
		}
		_, err = fmt.Fprintf(sW.outwriter, "%s\n", string(data))
		return err
	case OTMessagePack:
		data, err := msgpack.Marshal(rOut)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal %s row", rowType)
		}
		_, err = sW.outwriter.Write(data)
		return err
	}
	return nil
}

func (sW *SpecWriter) Flush() error {
	if tW, ok := sW.outwriter.(*tabwriter.Writer); ok {
		return tW.Flush()
	}
	return nil
}

func (sW *SpecWriter) WriteSpec(spec *ReportSpec) error {
	rows := specRows(spec)
	for _, row := range rows {
		err := sW.EmitRow(row.RowType, row.Index, row.Name, row.Values)
		if err != nil {
			return err
		}
		if sW.wantDashes && row.RowType == RowHeader {
			err = sW.EmitRow(RowHeader, row.Index, "", reptext.AllToChar(row.Values, '-'))
			if err != nil {
				return err
			}
		}
	}
	sW.logger.Debugf("Wrote %d rows for report %q", len(rows), spec.Name)
	return sW.Flush()
}

func specRows(spec *ReportSpec) []SpecRow {
	rows := []SpecRow{{RowType: RowHeader, Name: spec.Name, Values: []string{spec.Description}}}

	for idx, key := range spec.Fields {
		name, typ, err := ParseFieldKey(key)
		if err != nil {
			continue
		}
		rows = append(rows, SpecRow{RowType: RowField, Index: idx, Name: key, Values: []string{name, string(typ)}})
	}

	for gIdx, grp := range spec.Filters {
		for _, cond := range grp.Conditions {
			value := cond.Value
			if cond.IsPrompt() {
				value = fmt.Sprintf("{%s}", cond.Prompt)
			}
			rows = append(rows, SpecRow{
				RowType: RowFilter,
				Index:   gIdx,
				Name:    string(grp.Operator),
				Values:  []string{cond.Field, string(cond.Operator), value, cond.PromptID},
			})
		}
	}

	for idx, entry := range spec.Sort {
		rows = append(rows, SpecRow{RowType: RowSort, Index: idx, Name: entry.Field, Values: []string{string(entry.Direction)}})
	}

	po := spec.Presentation
	rows = append(rows, SpecRow{
		RowType: RowPresentation,
		Name:    "presentation",
		Values: []string{
			po.Title,
			string(po.ChartType),
			po.ChartField,
			strconv.Itoa(po.PageSize),
			strconv.FormatBool(po.ShowTotals),
		},
	})
	return rows
}
