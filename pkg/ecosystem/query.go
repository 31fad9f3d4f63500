package ecosystem

import "strings"

// Chapter returns the first chapter whose title equals title exactly, or nil.
func (d *Document) Chapter(title string) *Chapter {
	if d == nil {
		return nil
	}
	for _, c := range d.Chapters {
		if c.Title == title {
			return c
		}
	}
	return nil
}

// Section returns the first section of c titled title, or nil.
func (c *Chapter) Section(title string) *Section {
	if c == nil {
		return nil
	}
	for _, s := range c.Sections {
		if s.Title == title {
			return s
		}
	}
	return nil
}

// DjangoVersions lists every Django version mentioned by a django CMS
// release, newest first.
func (d *Document) DjangoVersions() []string {
	return d.releaseProperty(PropDjango)
}

// PythonVersions lists every Python version mentioned by a django CMS
// release, newest first.
func (d *Document) PythonVersions() []string {
	return d.releaseProperty(PropPython)
}

func (d *Document) releaseProperty(key string) []string {
	cms := d.Chapter(ChapterDjangoCMS)
	if cms == nil {
		return []string{}
	}
	var all [][]string
	for _, s := range cms.Sections {
		// An empty scalar ("* python:") declares nothing.
		if v := s.Properties.Get(key); v.Truthy() {
			all = append(all, v.Items())
		}
	}
	return SortVersions(distinct(all...))
}

// CMSVersions lists the django CMS releases described by the document
// ("django CMS 4.1" contributes "4.1"), newest first.
func (d *Document) CMSVersions() []string {
	cms := d.Chapter(ChapterDjangoCMS)
	if cms == nil {
		return []string{}
	}
	var versions []string
	for _, s := range cms.Sections {
		if strings.HasPrefix(s.Title, cmsSectionPrefix) {
			versions = append(versions, strings.TrimSpace(s.Title[len(cmsSectionPrefix):]))
		}
	}
	return SortVersions(distinct(versions))
}

// Release returns the section describing django CMS version, or nil.
func (d *Document) Release(version string) *Section {
	return d.Chapter(ChapterDjangoCMS).Section(cmsSectionPrefix + " " + version)
}

// PythonSupport returns the Python versions declared for a django CMS
// release, in declaration order.
func (d *Document) PythonSupport(version string) []string {
	return d.releaseItems(version, PropPython)
}

// DjangoSupport returns the Django versions declared for a django CMS
// release, in declaration order.
func (d *Document) DjangoSupport(version string) []string {
	return d.releaseItems(version, PropDjango)
}

// LTSSupport returns the Django versions a django CMS release is a
// long-term-support release for.
func (d *Document) LTSSupport(version string) []string {
	return d.releaseItems(version, PropLTS)
}

func (d *Document) releaseItems(version, key string) []string {
	s := d.Release(version)
	if s == nil {
		return []string{}
	}
	return s.Properties.Items(key)
}

// IsRelease reports whether s is a per-release section of the django CMS
// chapter ("django CMS 4.1").
func (s *Section) IsRelease() bool {
	return strings.HasPrefix(s.Title, cmsSectionPrefix+" ")
}

// ReleaseVersion returns the version part of a release section title.
func (s *Section) ReleaseVersion() string {
	return strings.TrimPrefix(s.Title, cmsSectionPrefix+" ")
}
