package integrations_test

import (
	"fmt"

	"github.com/matzehuels/cmsecosystem/pkg/integrations"
)

func ExampleNormalizePkgName() {
	fmt.Println(integrations.NormalizePkgName("djangocms_text"))
	fmt.Println(integrations.NormalizePkgName("Django-CMS"))
	fmt.Println(integrations.NormalizePkgName("djangocms.picture__ext"))
	// Output:
	// djangocms-text
	// django-cms
	// djangocms-picture-ext
}

func ExampleNormalizeRepoURL() {
	fmt.Println(integrations.NormalizeRepoURL("git@github.com:django-cms/django-cms.git"))
	fmt.Println(integrations.NormalizeRepoURL("git+https://github.com/django-cms/djangocms-text.git"))
	// Output:
	// https://github.com/django-cms/django-cms
	// https://github.com/django-cms/djangocms-text
}
