package snapshot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/spec-kit/employee-service/internal/domain"
)

// FormatError reports a snapshot document that could not be parsed.
type FormatError struct {
	Size int
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("snapshot: malformed document (%d bytes): %v", e.Size, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

type documentXML struct {
	XMLName     xml.Name        `xml:"departmentListModel"`
	ID          string          `xml:"id"`
	Departments []departmentXML `xml:"departmentModel"`
}

type departmentXML struct {
	ID        string          `xml:"id"`
	Name      string          `xml:"name"`
	Employees employeeListXML `xml:"employeeListModel"`
}

type employeeListXML struct {
	ID        string        `xml:"id"`
	Employees []employeeXML `xml:"employeeModel"`
}

type employeeXML struct {
	ID   string `xml:"id"`
	Name string `xml:"name"`
}

// Decode parses a snapshot document and rebuilds the aggregate.
// Employees are re-added through Department.AddEmployee so every back reference is set by the model itself.
func Decode(data []byte) (*domain.DepartmentList, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var doc documentXML
	if err := dec.Decode(&doc); err != nil {
		return nil, &FormatError{Size: len(data), Err: err}
	}
	if err := expectEnd(dec); err != nil {
		return nil, &FormatError{Size: len(data), Err: err}
	}

	list := domain.NewDepartmentList(doc.ID)
	for _, d := range doc.Departments {
		dept := domain.NewDepartment(d.ID, d.Name, domain.NewEmployeeList(d.Employees.ID))
		list.Departments = append(list.Departments, dept)

		for _, e := range d.Employees.Employees {
			dept.AddEmployee(e.ID, e.Name)
		}
	}
	return list, nil
}

// expectEnd reads past the root element. Only whitespace, comments and processing
// instructions may follow it.
func expectEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return fmt.Errorf("text after root element: %q", t)
			}
		case xml.StartElement:
			return fmt.Errorf("element <%s> after root element", t.Name.Local)
		default:
			return fmt.Errorf("unexpected %T after root element", t)
		}
	}
}
