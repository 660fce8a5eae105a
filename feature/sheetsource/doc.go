// Package sheetsource exposes the sheets of an OpenDocument spreadsheet as read-only
// tables. Workbooks are read from local disk or from object storage and parsed once per
// cache lifetime.
package sheetsource
