package language

import "github.com/locstat/core/pkg/domain"

func lang(name string, exts, single []string, multi []domain.Delimiter) domain.LanguageSpec {
	return domain.LanguageSpec{Name: name, Extensions: exts, SingleLine: single, MultiLine: multi}
}

func pair(start, end string) domain.Delimiter {
	return domain.Delimiter{Start: start, End: end}
}

// builtin is the default language table. Markers that are prefixes of each
// other ("///" vs "//") list the longer one first so the classifier's
// first-match rule picks the specific marker.
var builtin = []domain.LanguageSpec{
	lang("ASP.NET",
		[]string{"asax", "ascx", "asmx", "aspx", "master", "sitemap", "webinfo"},
		nil,
		[]domain.Delimiter{pair("<!--", "-->"), pair("<%--", "-->")}),
	lang("C", []string{"c", "h"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("C#", []string{"cs"}, []string{"///", "//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("C++", []string{"cpp", "cc", "cxx", "hpp"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("CSS", []string{"css", "scss", "sass", "less"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("CoffeeScript", []string{"coffee"}, []string{"#"}, []domain.Delimiter{pair("###", "###")}),
	lang("D", []string{"d"}, []string{"///", "//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("Dart", []string{"dart"}, []string{"///", "//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("Go", []string{"go"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("HTML", []string{"htm", "html"}, nil, []domain.Delimiter{pair("<!--", "-->")}),
	lang("Haskell", []string{"hs"}, []string{"--"}, []domain.Delimiter{pair("{-", "-}")}),
	lang("JSON", []string{"json"}, nil, nil),
	lang("Java", []string{"java"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("JavaScript", []string{"js", "mjs", "cjs"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("JavaScript JSX", []string{"jsx"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("Julia", []string{"jl"}, []string{"#"}, []domain.Delimiter{pair("#=", "=#")}),
	lang("LLVM", []string{"ll"}, []string{";"}, nil),
	lang("Lua", []string{"lua"}, []string{"--"}, []domain.Delimiter{pair("--[[", "]]")}),
	lang("Markdown", []string{"md", "markdown"}, nil, nil),
	lang("Nim", []string{"nim"}, []string{"#"}, []domain.Delimiter{pair("#[", "]#")}),
	lang("Objective-C", []string{"m"}, []string{"///", "//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("Objective-C++", []string{"mm"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("PHP", []string{"php"}, []string{"//", "#"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("Perl", []string{"pl", "pm"}, []string{"#"}, []domain.Delimiter{pair("=", "=")}),
	lang("Python", []string{"py"}, []string{"#"},
		[]domain.Delimiter{pair("'''", "'''"), pair(`"""`, `"""`)}),
	lang("R", []string{"r"}, []string{"#"}, nil),
	lang("Ruby", []string{"rb"}, []string{"#"}, []domain.Delimiter{pair("=", "=")}),
	lang("Rust", []string{"rs"}, []string{"///", "//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("SQL", []string{"sql"}, []string{"--"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("Scala", []string{"scala", "sc"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("Shell", []string{"sh", "bash", "zsh", "fish"}, []string{"#"}, nil),
	lang("Swift", []string{"swift"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("TOML", []string{"toml"}, []string{"#"}, nil),
	lang("TypeScript", []string{"ts"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("TypeScript JSX", []string{"tsx"}, []string{"//"}, []domain.Delimiter{pair("/*", "*/")}),
	lang("VimScript", []string{"vim"}, []string{`"`}, nil),
	// Vue single file components mix html, js/ts and css blocks; only the
	// comment styles are matched here, the blocks are not told apart.
	lang("Vue", []string{"vue"}, []string{"//"},
		[]domain.Delimiter{pair("<!--", "-->"), pair("/*", "*/")}),
	lang("XML", []string{"xml"}, nil, []domain.Delimiter{pair("<!--", "-->")}),
	lang("YAML", []string{"yml", "yaml"}, []string{"#"}, nil),
}
