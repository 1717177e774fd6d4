// Package forms describes the HTML forms the site renders and accepts.
//
// A Registry is loaded from YAML, either the embedded default set or a file
// named by configuration, and hands out *Form handles by identifier. Binders
// receive these handles explicitly instead of looking forms up by a global
// name at submit time, and Lookup/Field fail fast with ErrFormNotFound and
// ErrFieldNotFound so a wrong identifier stops the process at startup.
//
//	forms:
//	  - id: searchForm
//	    action: /results
//	    fields:
//	      - name: query
//	        type: search
package forms
