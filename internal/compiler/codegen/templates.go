package codegen

// Statement shapes must match the macros in ObjectMacros.h and
// LuaBindHelpers.h exactly.

const emptyPropertyBlockTemplate = `BEGIN_PROPERTIES({{ .Name }})
    MARK_AS_COMPONENT("{{ .Name }}", "Auto-generated component")
END_PROPERTIES()
`

const propertyBlockTemplate = `
{{- define "tooltip" }}{{ if .Tooltip }}, "{{ .Tooltip }}"{{ end }}{{ end -}}
{{- define "property" -}}
{{- if eq .Category "ADD_PROPERTY_RANGE" -}}
ADD_PROPERTY_RANGE({{ .Type }}, {{ .Name }}, "{{ .Label }}", {{ float .Min }}f, {{ float .Max }}f, {{ .Editable }}{{ template "tooltip" . }})
{{- else if eq .Category "ADD_PROPERTY_ARRAY" -}}
ADD_PROPERTY_ARRAY({{ .InnerType | default "EPropertyType::ObjectPtr" }}, {{ .Name }}, "{{ .Label }}", {{ .Editable }}{{ template "tooltip" . }})
{{- else -}}
{{ .Category }}({{ .Type }}, {{ .Name }}, "{{ .Label }}", {{ .Editable }}{{ template "tooltip" . }})
{{- end -}}
{{- end -}}
BEGIN_PROPERTIES({{ .Name }})
    {{ .MarkMacro }}("{{ .DisplayName }}", "{{ .Description }}")
{{ range .Properties }}    {{ template "property" . }}
{{ end }}END_PROPERTIES()
`

const luaBlockTemplate = `LUA_BIND_BEGIN({{ .Name }})
{
{{ range .Functions }}    {{ .Helper }}<{{ join ", " .TypeArgs }}>(T, "{{ .DisplayName }}", &{{ $.Name }}::{{ .Name }});
{{ end }}}
LUA_BIND_END()
`

const headerFileTemplate = `// Generated by reflectgen from {{ .Source }}. Do not edit.
#pragma once
`

const sourceFileTemplate = `// Generated by reflectgen from {{ .Source }}. Do not edit.
{{ with .PCH }}#include "{{ . }}"
{{ end }}#include "{{ .Header }}"
{{- if .Lua }}
#include "LuaBindHelpers.h"
{{- end }}

{{ .Properties }}
{{- if .Lua }}
{{ .Lua }}
{{- end -}}
`
