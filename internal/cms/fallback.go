package cms

// KindLegal is the content kind of legal pages.
const KindLegal = "legal"

var builtinPages = map[string]map[string]string{
	KindLegal + "/mentions-legales": {
		"fr": `---
title: Mentions légales
---
## Éditeur du site

Le site {brand} présente un appartement de location saisonnière situé à {locality}.
Contact : [{email}](mailto:{email}), téléphone {phone}.

## Hébergement

Le site est servi sous forme de pages statiques. Les contenus (tarifs, photos, avis) sont publiés par le propriétaire.

## Propriété intellectuelle

Les textes et photographies sont la propriété de {brand}, sauf mention contraire. Les fonds de carte proviennent d'OpenStreetMap et de ses contributeurs.

## Données personnelles

Les informations envoyées par le formulaire de contact servent uniquement à répondre à votre demande de séjour.
Un cookie mémorise la saison consultée ; la mesure d'audience ne dépose aucun cookie.

© {year} {brand}
`,
		"en": `---
title: Legal notice
---
## Publisher

The {brand} website presents a holiday rental apartment located in {locality}.
Contact: [{email}](mailto:{email}), phone {phone}.

## Hosting

The site is served as static pages. Content (rates, photos, reviews) is published by the owner.

## Intellectual property

Texts and photographs belong to {brand} unless stated otherwise. Map backgrounds come from OpenStreetMap and its contributors.

## Personal data

Details sent through the contact form are only used to answer your stay request.
One cookie remembers the season you viewed; audience measurement sets no cookie.

© {year} {brand}
`,
	},
}

func builtinPage(kind, slug, lang string) (ContentPage, error) {
	byLang, ok := builtinPages[kind+"/"+slug]
	if !ok {
		return ContentPage{}, ErrNotFound
	}
	for _, candidate := range languages(lang) {
		if raw, ok := byLang[candidate]; ok {
			return parsePage([]byte(raw), kind, slug, candidate)
		}
	}
	return ContentPage{}, ErrNotFound
}
